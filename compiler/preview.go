package compiler

import (
	"cutlist/subtitle"
	"cutlist/timeline"
)

// Preview maps the untouched source timeline into cut rows so it can be shown
// before any selection exists.
//
// With segments, every segment becomes a row in input order, unpadded; text that
// no clip covers becomes a RowGap row. Without segments, every clip on every
// track becomes a row, ordered by timeline start.
func Preview(tl timeline.Timeline, segs []subtitle.Segment) ([]Cut, error) {
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return previewClips(tl), nil
	}

	loc := timeline.NewLocator(tl)
	rows := make([]Cut, 0, len(segs))
	for _, seg := range segs {
		segStart := timeline.TimeToFrame(seg.Start, tl.FrameRate)
		segEnd := timeline.TimeToFrame(seg.End, tl.FrameRate)
		duration := segEnd - segStart
		if duration <= 0 {
			continue
		}

		row := Cut{
			SequenceIndex:   len(rows) + 1,
			SourceSegmentID: seg.ID,
			SegmentIDs:      []int{seg.ID},
			Text:            seg.Text,
			TimelineIn:      segStart,
			TimelineOut:     segEnd,
			DurationFrames:  duration,
		}

		clip, ok := loc.Find(segStart)
		if !ok {
			row.Kind = RowGap
			row.SourceIn = -1
			row.SourceOut = -1
			rows = append(rows, row)
			continue
		}

		row.Kind = RowMedia
		row.ClipName = clip.Name
		row.SourceIn = clip.SourceIn + (segStart - clip.TimelineStart)
		row.SourceOut = row.SourceIn + duration
		row.FileID = clip.FileID
		row.FilePath = clip.FilePath
		row.MasterClipID = clip.MasterClipID
		row.TrackIndex = clip.TrackIndex
		rows = append(rows, row)
	}
	return rows, nil
}

func previewClips(tl timeline.Timeline) []Cut {
	clips := make([]timeline.MediaClip, len(tl.Clips))
	copy(clips, tl.Clips)
	timeline.SortClips(clips)

	rows := make([]Cut, 0, len(clips))
	for i, c := range clips {
		rows = append(rows, Cut{
			Kind:           RowMedia,
			SequenceIndex:  i + 1,
			ClipName:       c.Name,
			Text:           c.Name,
			TimelineIn:     c.TimelineStart,
			TimelineOut:    c.TimelineEnd,
			SourceIn:       c.SourceIn,
			SourceOut:      c.SourceOut,
			FileID:         c.FileID,
			FilePath:       c.FilePath,
			DurationFrames: c.Duration(),
			MasterClipID:   c.MasterClipID,
			TrackIndex:     c.TrackIndex,
		})
	}
	return rows
}
