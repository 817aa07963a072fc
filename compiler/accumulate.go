package compiler

// Accumulate lays candidates end to end on a fresh output timeline starting at
// frame 0 and numbers them from 1.
func Accumulate(cands []Candidate) []Cut {
	cuts := make([]Cut, 0, len(cands))
	running := 0
	for i, c := range cands {
		duration := c.Duration()
		cuts = append(cuts, Cut{
			Kind:            RowMedia,
			SequenceIndex:   i + 1,
			SourceSegmentID: c.SegmentID,
			SegmentIDs:      append([]int(nil), c.SegmentIDs...),
			ClipName:        c.ClipName,
			Text:            c.Text,
			TimelineIn:      running,
			TimelineOut:     running + duration,
			SourceIn:        c.SourceIn,
			SourceOut:       c.SourceOut,
			FileID:          c.FileID,
			FilePath:        c.FilePath,
			DurationFrames:  duration,
			MasterClipID:    c.MasterClipID,
			TrackIndex:      c.TrackIndex,
		})
		running += duration
	}
	return cuts
}
