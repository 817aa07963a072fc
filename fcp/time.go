package fcp

import (
	"fmt"
	"strconv"
	"strings"

	"cutlist/timeline"
)

// ParseRational parses FCPXML time values: "0s", "5s", "1001/30000s".
func ParseRational(value string) (num, den int64, err error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, 1, nil
	}
	if !strings.HasSuffix(v, "s") {
		return 0, 0, fmt.Errorf("invalid FCPXML time %q", value)
	}
	v = strings.TrimSuffix(v, "s")

	numStr, denStr := v, "1"
	if i := strings.IndexByte(v, '/'); i >= 0 {
		numStr, denStr = v[:i], v[i+1:]
	}
	num, err = strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid FCPXML time %q: %w", value, err)
	}
	den, err = strconv.ParseInt(denStr, 10, 64)
	if err != nil || den <= 0 {
		return 0, 0, fmt.Errorf("invalid FCPXML time denominator in %q", value)
	}
	return num, den, nil
}

// ParseTime converts an FCPXML time value to seconds.
func ParseTime(value string) (float64, error) {
	num, den, err := ParseRational(value)
	if err != nil {
		return 0, err
	}
	return float64(num) / float64(den), nil
}

// TimeToFrames converts an FCPXML time value to a frame count at the given frame
// duration, rounding to the nearest frame.
func TimeToFrames(value string, frameNum, frameDen int) (int, error) {
	num, den, err := ParseRational(value)
	if err != nil {
		return 0, err
	}
	// seconds = num/den; frames = seconds * frameDen / frameNum
	n := num * int64(frameDen)
	d := den * int64(frameNum)
	if d == 0 {
		return 0, fmt.Errorf("invalid frame duration %d/%d", frameNum, frameDen)
	}
	if n >= 0 {
		return int((n + d/2) / d), nil
	}
	return -int((-n + d/2) / d), nil
}

// FramesToTime formats a frame count as a frame-aligned FCPXML time value.
func FramesToTime(frames int, fps float64) string {
	if frames == 0 {
		return "0s"
	}
	num, den := timeline.FrameDuration(fps)
	return fmt.Sprintf("%d/%ds", frames*num, den)
}

// FrameDurationString returns the format frameDuration attribute for a rate.
func FrameDurationString(fps float64) string {
	num, den := timeline.FrameDuration(fps)
	return fmt.Sprintf("%d/%ds", num, den)
}
