package compiler

import (
	"cutlist/subtitle"
	"cutlist/timeline"
)

// Materialize resolves one selected segment to a padded source range inside its
// owning clip. When the segment cannot be cut the returned bool is false and the
// DropReason says why.
func Materialize(seg subtitle.Segment, loc *timeline.Locator, fps float64, opts Options) (Candidate, DropReason, bool) {
	segStart := timeline.TimeToFrame(seg.Start, fps)
	segEnd := timeline.TimeToFrame(seg.End, fps)
	rawDuration := segEnd - segStart
	if rawDuration <= 0 {
		return Candidate{}, DropDegenerate, false
	}

	clip, ok := loc.Find(segStart)
	if !ok {
		return Candidate{}, DropGap, false
	}

	sourceIn := clip.SourceIn + (segStart - clip.TimelineStart)

	// Head padding may reach before the clip's in point but never before frame 0.
	paddedIn := sourceIn - opts.HeadPadding
	if paddedIn < 0 {
		paddedIn = 0
	}
	appliedHead := sourceIn - paddedIn

	desired := rawDuration + appliedHead + opts.TailPadding

	// The readable end is the clip's out point, and never further than the frames
	// left in this placement after segStart.
	bound := clip.SourceOut
	if remaining := sourceIn + (clip.TimelineEnd - segStart); remaining < bound {
		bound = remaining
	}
	duration := desired
	if avail := bound - paddedIn; avail < duration {
		duration = avail
	}
	if duration < 1 {
		return Candidate{}, DropNoFrames, false
	}

	return Candidate{
		SegmentID:    seg.ID,
		SegmentIDs:   []int{seg.ID},
		Start:        seg.Start,
		Text:         seg.Text,
		FileID:       clip.FileID,
		FilePath:     clip.FilePath,
		ClipName:     clip.Name,
		SourceIn:     paddedIn,
		SourceOut:    paddedIn + duration,
		MasterClipID: clip.MasterClipID,
		TrackIndex:   clip.TrackIndex,
	}, 0, true
}
