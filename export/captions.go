package export

import (
	"fmt"
	"strings"

	"cutlist/compiler"
	"cutlist/subtitle"
	"cutlist/timeline"
)

// SRT writes one SubRip cue per media cut, timed on the compiled timeline.
func SRT(cuts []compiler.Cut, frameRate float64) string {
	var b strings.Builder
	n := 0
	for _, cut := range cuts {
		if cut.IsGap() {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n,
			subtitle.FormatTimestamp(timeline.FrameToTime(cut.TimelineIn, frameRate), ","),
			subtitle.FormatTimestamp(timeline.FrameToTime(cut.TimelineOut, frameRate), ","),
			cut.Text)
	}
	return b.String()
}

// VTT writes the same cues as SRT in WebVTT form.
func VTT(cuts []compiler.Cut, frameRate float64) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, cut := range cuts {
		if cut.IsGap() {
			continue
		}
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			subtitle.FormatTimestamp(timeline.FrameToTime(cut.TimelineIn, frameRate), "."),
			subtitle.FormatTimestamp(timeline.FrameToTime(cut.TimelineOut, frameRate), "."),
			cut.Text)
	}
	return b.String()
}
