// Package timeline holds the parsed editing timeline and the pure functions that move
// between seconds, timeline frames and source frames.
package timeline

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidTimebase is returned when a timeline has no usable frame rate.
var ErrInvalidTimebase = errors.New("invalid timebase: frame rate must be positive")

// MediaClip is one placement of source media on the editing timeline.
//
// TimelineStart/TimelineEnd are output-timeline frames (end exclusive).
// SourceIn/SourceOut are frames in the originating file; SourceOut is the furthest
// frame that may be read through this placement.
type MediaClip struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TimelineStart int    `json:"timeline_start"`
	TimelineEnd   int    `json:"timeline_end"`
	SourceIn      int    `json:"source_in"`
	SourceOut     int    `json:"source_out"`
	FileID        string `json:"file_id"`
	FilePath      string `json:"file_path"`
	MasterClipID  string `json:"master_clip_id"`
	TrackIndex    int    `json:"track_index"`
}

// Duration returns the number of timeline frames the clip occupies.
func (c MediaClip) Duration() int {
	return c.TimelineEnd - c.TimelineStart
}

// Timeline is a parsed sequence: frame rate, resolution and clips ordered by
// TimelineStart. Clips on different tracks may overlap.
type Timeline struct {
	FrameRate float64     `json:"frame_rate"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Clips     []MediaClip `json:"clips"`
}

// Validate checks the timebase. It is the only timeline property the compiler
// refuses to work around.
func (t Timeline) Validate() error {
	if t.FrameRate <= 0 || math.IsNaN(t.FrameRate) || math.IsInf(t.FrameRate, 0) {
		return ErrInvalidTimebase
	}
	return nil
}

// Tracks returns the distinct track indexes in ascending order.
func (t Timeline) Tracks() []int {
	seen := make(map[int]bool)
	var tracks []int
	for _, c := range t.Clips {
		if !seen[c.TrackIndex] {
			seen[c.TrackIndex] = true
			tracks = append(tracks, c.TrackIndex)
		}
	}
	sort.Ints(tracks)
	return tracks
}

// End returns the last timeline frame covered by any clip.
func (t Timeline) End() int {
	end := 0
	for _, c := range t.Clips {
		if c.TimelineEnd > end {
			end = c.TimelineEnd
		}
	}
	return end
}

// SortClips orders clips by TimelineStart, then track, in place.
func SortClips(clips []MediaClip) {
	sort.SliceStable(clips, func(i, j int) bool {
		if clips[i].TimelineStart != clips[j].TimelineStart {
			return clips[i].TimelineStart < clips[j].TimelineStart
		}
		return clips[i].TrackIndex < clips[j].TrackIndex
	})
}
