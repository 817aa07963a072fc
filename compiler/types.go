package compiler

import "fmt"

// RowKind tells media rows from gap rows.
type RowKind int

const (
	// RowMedia rows point at real source frames.
	RowMedia RowKind = iota
	// RowGap rows mark preview text that no clip covers. Their source fields hold -1.
	RowGap
)

func (k RowKind) String() string {
	switch k {
	case RowMedia:
		return "media"
	case RowGap:
		return "gap"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// MarshalText keeps JSON output readable.
func (k RowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *RowKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "media", "":
		*k = RowMedia
	case "gap":
		*k = RowGap
	default:
		return fmt.Errorf("unknown row kind %q", string(b))
	}
	return nil
}

// Cut is one row of a preview or compiled cut list.
type Cut struct {
	Kind            RowKind `json:"kind"`
	SequenceIndex   int     `json:"sequence_index"`
	SourceSegmentID int     `json:"source_segment_id"`
	SegmentIDs      []int   `json:"segment_ids,omitempty"`
	ClipName        string  `json:"clip_name"`
	Text            string  `json:"text"`
	TimelineIn      int     `json:"timeline_in"`
	TimelineOut     int     `json:"timeline_out"`
	SourceIn        int     `json:"source_in"`
	SourceOut       int     `json:"source_out"`
	FileID          string  `json:"file_id"`
	FilePath        string  `json:"file_path"`
	DurationFrames  int     `json:"duration_frames"`
	MasterClipID    string  `json:"master_clip_id"`
	TrackIndex      int     `json:"track_index"`
}

// IsGap reports whether the row is an unmapped gap marker.
func (c Cut) IsGap() bool {
	return c.Kind == RowGap
}

// Candidate is a materialized, padded source range for one or more selected
// segments, before output positions are assigned.
type Candidate struct {
	SegmentID    int
	SegmentIDs   []int
	Start        float64 // seconds, chronological sort key
	Text         string
	FileID       string
	FilePath     string
	ClipName     string
	SourceIn     int
	SourceOut    int
	MasterClipID string
	TrackIndex   int
}

// Duration returns the number of source frames covered.
func (c Candidate) Duration() int {
	return c.SourceOut - c.SourceIn
}

// DropReason explains why a selected segment produced no candidate.
type DropReason int

const (
	// DropDegenerate: start and end floor to the same frame.
	DropDegenerate DropReason = iota + 1
	// DropGap: no clip covers the segment start.
	DropGap
	// DropNoFrames: clamping to the clip bounds left less than one frame.
	DropNoFrames
)

func (r DropReason) String() string {
	switch r {
	case DropDegenerate:
		return "degenerate"
	case DropGap:
		return "gap"
	case DropNoFrames:
		return "no-frames"
	default:
		return fmt.Sprintf("DropReason(%d)", int(r))
	}
}

func (r DropReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *DropReason) UnmarshalText(b []byte) error {
	switch string(b) {
	case "degenerate":
		*r = DropDegenerate
	case "gap":
		*r = DropGap
	case "no-frames":
		*r = DropNoFrames
	default:
		return fmt.Errorf("unknown drop reason %q", string(b))
	}
	return nil
}

// Drop records a selected segment that was left out of the cut list.
type Drop struct {
	SegmentID int        `json:"segment_id"`
	Reason    DropReason `json:"reason"`
}

// Result is the outcome of one compilation.
type Result struct {
	Cuts    []Cut  `json:"cuts"`
	Matched int    `json:"matched"`
	Dropped []Drop `json:"dropped,omitempty"`
}

// TotalFrames returns the length of the compiled timeline.
func (r Result) TotalFrames() int {
	if len(r.Cuts) == 0 {
		return 0
	}
	return r.Cuts[len(r.Cuts)-1].TimelineOut
}
