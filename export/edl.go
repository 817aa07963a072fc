// Package export writes compiled cut lists in formats editors and players import.
// Gap rows are never written.
package export

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"cutlist/compiler"
	"cutlist/timeline"
)

// EDL renders media cuts as a CMX3600 edit decision list. Record timecodes come
// from the compiled timeline; source timecodes are frames into each file.
func EDL(cuts []compiler.Cut, title string, frameRate float64) string {
	drop := timeline.IsDropFrame(frameRate)

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if drop {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	event := 0
	for _, cut := range cuts {
		if cut.IsGap() {
			continue
		}
		event++
		srcIn := FramesToTimecode(cut.SourceIn, frameRate)
		srcOut := FramesToTimecode(cut.SourceOut, frameRate)
		recIn := FramesToTimecode(cut.TimelineIn, frameRate)
		recOut := FramesToTimecode(cut.TimelineOut, frameRate)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", event, reelName(cut), "V", srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", cut.ClipName),
		)
		if cut.FilePath != "" {
			lines = append(lines, fmt.Sprintf("* SOURCE FILE:  %s", cut.FilePath))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// reelName is the file's base name reduced to the 8 characters a reel field holds.
func reelName(cut compiler.Cut) string {
	base := filepath.Base(cut.FilePath)
	if cut.FilePath == "" {
		base = cut.FileID
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := strings.ToUpper(SanitizeName(base, 8))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		return "AX"
	}
	return name
}

// FramesToTimecode formats a frame count as HH:MM:SS:FF, or HH:MM:SS;FF with
// drop-frame numbering at 29.97 and 59.94.
func FramesToTimecode(frames int, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = 30
	}
	if frames < 0 {
		frames = 0
	}

	sep := ":"
	if timeline.IsDropFrame(frameRate) {
		sep = ";"
		frames = dropFrameNumber(frames, fps)
	}

	ff := frames % fps
	totalSeconds := frames / fps
	ss := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	mm := totalMinutes % 60
	hh := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hh, mm, ss, sep, ff)
}

// dropFrameNumber skips the frame numbers drop-frame timecode omits: the first
// two (four at 60) of every minute except each tenth minute.
func dropFrameNumber(frames, fps int) int {
	dropped := fps / 15
	perMinute := fps*60 - dropped
	perTenMinutes := perMinute*10 + dropped

	tens := frames / perTenMinutes
	rem := frames % perTenMinutes
	frames += dropped * 9 * tens
	if rem > dropped {
		frames += dropped * ((rem - dropped) / perMinute)
	}
	return frames
}
