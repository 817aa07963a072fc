// Package subtitle parses WebVTT and SubRip files into timed text segments.
package subtitle

import (
	"fmt"
	"math"
)

// Segment is one timed cue. Times are seconds; End is always after Start.
// IDs are unique within a parsed file but need not be contiguous.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Index maps segment ids to segments.
func Index(segs []Segment) map[int]Segment {
	idx := make(map[int]Segment, len(segs))
	for _, s := range segs {
		idx[s.ID] = s
	}
	return idx
}

// FormatTimestamp renders seconds as HH:MM:SS<sep>mmm. VTT uses '.', SRT uses ','.
func FormatTimestamp(seconds float64, sep string) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int64(math.Round(seconds * 1000))
	ms := totalMs % 1000
	totalSeconds := totalMs / 1000
	s := totalSeconds % 60
	m := (totalSeconds / 60) % 60
	h := totalSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms)
}
