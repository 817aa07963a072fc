// Package compiler turns a timeline, its transcript and a selection of transcript
// segment ids into a frame-accurate, gapless cut list.
//
// Every function here is pure: inputs are read, never modified, and every call
// returns freshly allocated output.
package compiler

import (
	"errors"

	"cutlist/subtitle"
	"cutlist/timeline"
)

// ErrInvalidTimebase is re-exported so callers only need this package.
var ErrInvalidTimebase = timeline.ErrInvalidTimebase

// ErrEmptySelection means ids were selected but none of them exist in the
// transcript. An empty selection is not an error; it compiles to no cuts.
var ErrEmptySelection = errors.New("no selected id matches a transcript segment")

// Compile materializes the selected segments, orders them chronologically,
// fuses adjacent ranges of the same file and lays the result out from frame 0.
//
// The order of selected does not matter. Unknown and repeated ids are ignored.
func Compile(tl timeline.Timeline, segs []subtitle.Segment, selected []int, opts Options) (Result, error) {
	if err := tl.Validate(); err != nil {
		return Result{}, err
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if len(selected) == 0 {
		return Result{Cuts: []Cut{}}, nil
	}

	chosen := resolveSelection(segs, selected)
	if len(chosen) == 0 {
		return Result{}, ErrEmptySelection
	}

	loc := timeline.NewLocator(tl)
	res := Result{Matched: len(chosen)}
	cands := make([]Candidate, 0, len(chosen))
	for _, seg := range chosen {
		cand, reason, ok := Materialize(seg, loc, tl.FrameRate, opts)
		if !ok {
			res.Dropped = append(res.Dropped, Drop{SegmentID: seg.ID, Reason: reason})
			continue
		}
		cands = append(cands, cand)
	}

	res.Cuts = Accumulate(Merge(SortChronological(cands), opts.MergeTolerance))
	return res, nil
}

// resolveSelection returns the selected segments in transcript order, each once.
func resolveSelection(segs []subtitle.Segment, selected []int) []subtitle.Segment {
	want := make(map[int]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}

	var chosen []subtitle.Segment
	for _, s := range segs {
		if want[s.ID] {
			chosen = append(chosen, s)
			delete(want, s.ID)
		}
	}
	return chosen
}
