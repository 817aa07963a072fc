package timeline

import "math"

// frameEpsilon absorbs binary representation error so that, for example,
// 1.04s at 25fps lands on frame 26 rather than 25.
const frameEpsilon = 1e-9

// TimeToFrame converts seconds to a frame index with floor rounding. Every
// boundary in the compiler goes through here so summed boundaries never drift.
func TimeToFrame(seconds, fps float64) int {
	return int(math.Floor(seconds*fps + frameEpsilon))
}

// FrameToTime converts a frame index back to seconds. Only re-serializers use it.
func FrameToTime(frame int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frame) / fps
}

// FrameDuration returns the rational duration of one frame as num/den seconds, in
// the form FCPXML expects (1001/30000 for 29.97, 100/2500 for 25).
func FrameDuration(fps float64) (num, den int) {
	switch {
	case nearly(fps, 23.976):
		return 1001, 24000
	case nearly(fps, 29.97):
		return 1001, 30000
	case nearly(fps, 47.952):
		return 1001, 48000
	case nearly(fps, 59.94):
		return 1001, 60000
	}
	return 100, int(math.Round(fps * 100))
}

// FrameRateFromDuration is the inverse of FrameDuration.
func FrameRateFromDuration(num, den int) float64 {
	if num <= 0 || den <= 0 {
		return 0
	}
	return float64(den) / float64(num)
}

// IsDropFrame reports whether the rate is one of the NTSC rates that use
// drop-frame timecode.
func IsDropFrame(fps float64) bool {
	return nearly(fps, 29.97) || nearly(fps, 59.94)
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}
