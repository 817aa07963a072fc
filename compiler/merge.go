package compiler

import "sort"

// SortChronological orders candidates by the start time of their first segment,
// falling back to segment id. The input slice is left untouched.
func SortChronological(cands []Candidate) []Candidate {
	out := make([]Candidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].SegmentID < out[j].SegmentID
	})
	return out
}

// Merge fuses chronologically adjacent candidates that continue the same file.
//
// next joins current when both read the same file and next starts inside
// [current.SourceIn, current.SourceOut+tolerance]. A jump back to earlier frames
// of the same file stays a separate cut. Input must already be chronological.
func Merge(cands []Candidate, tolerance int) []Candidate {
	if len(cands) == 0 {
		return nil
	}

	merged := make([]Candidate, 0, len(cands))
	current := cloneCandidate(cands[0])
	for _, next := range cands[1:] {
		if next.FileID == current.FileID &&
			next.SourceIn >= current.SourceIn &&
			next.SourceIn <= current.SourceOut+tolerance {
			if next.SourceOut > current.SourceOut {
				current.SourceOut = next.SourceOut
			}
			current.Text = joinText(current.Text, next.Text)
			current.SegmentIDs = append(current.SegmentIDs, next.SegmentIDs...)
			continue
		}
		merged = append(merged, current)
		current = cloneCandidate(next)
	}
	return append(merged, current)
}

func cloneCandidate(c Candidate) Candidate {
	c.SegmentIDs = append([]int(nil), c.SegmentIDs...)
	return c
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
