package timeline

import (
	"errors"
	"math"
	"testing"
)

func TestTimeToFrame(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		fps     float64
		want    int
	}{
		{name: "zero", seconds: 0, fps: 25, want: 0},
		{name: "one second", seconds: 1, fps: 25, want: 25},
		{name: "floors partial frame", seconds: 1.039, fps: 25, want: 25},
		{name: "representation error", seconds: 1.04, fps: 25, want: 26},
		{name: "ntsc", seconds: 10, fps: 30000.0 / 1001.0, want: 299},
		{name: "tenths", seconds: 0.3, fps: 30, want: 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TimeToFrame(tc.seconds, tc.fps)
			if got != tc.want {
				t.Fatalf("TimeToFrame(%v, %v) = %d, want %d", tc.seconds, tc.fps, got, tc.want)
			}
		})
	}
}

func TestFrameToTime(t *testing.T) {
	if got := FrameToTime(50, 25); got != 2 {
		t.Fatalf("FrameToTime(50, 25) = %v, want 2", got)
	}
	if got := FrameToTime(50, 0); got != 0 {
		t.Fatalf("FrameToTime with zero fps = %v, want 0", got)
	}
	for frame := 0; frame < 500; frame += 7 {
		if back := TimeToFrame(FrameToTime(frame, 29.97), 29.97); back != frame {
			t.Fatalf("round trip of frame %d gave %d", frame, back)
		}
	}
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps      float64
		num, den int
	}{
		{fps: 30000.0 / 1001.0, num: 1001, den: 30000},
		{fps: 24000.0 / 1001.0, num: 1001, den: 24000},
		{fps: 60000.0 / 1001.0, num: 1001, den: 60000},
		{fps: 25, num: 100, den: 2500},
		{fps: 30, num: 100, den: 3000},
	}
	for _, tc := range tests {
		num, den := FrameDuration(tc.fps)
		if num != tc.num || den != tc.den {
			t.Errorf("FrameDuration(%v) = %d/%d, want %d/%d", tc.fps, num, den, tc.num, tc.den)
		}
		if got := FrameRateFromDuration(num, den); math.Abs(got-tc.fps) > 0.001 {
			t.Errorf("FrameRateFromDuration(%d, %d) = %v, want %v", num, den, got, tc.fps)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, fps := range []float64{0, -25, math.NaN(), math.Inf(1)} {
		if err := (Timeline{FrameRate: fps}).Validate(); !errors.Is(err, ErrInvalidTimebase) {
			t.Errorf("Validate() with fps %v = %v, want ErrInvalidTimebase", fps, err)
		}
	}
	if err := (Timeline{FrameRate: 25}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestFindOwningClip(t *testing.T) {
	tl := Timeline{
		FrameRate: 25,
		Clips: []MediaClip{
			{ID: "a", TimelineStart: 0, TimelineEnd: 100, TrackIndex: 1},
			{ID: "b", TimelineStart: 50, TimelineEnd: 150, TrackIndex: 0},
			{ID: "c", TimelineStart: 200, TimelineEnd: 300, TrackIndex: 0},
			{ID: "d", TimelineStart: 250, TimelineEnd: 400, TrackIndex: 2},
		},
	}

	tests := []struct {
		frame  int
		wantID string
		found  bool
	}{
		{frame: 0, wantID: "a", found: true},
		{frame: 49, wantID: "a", found: true},
		{frame: 50, wantID: "b", found: true},
		{frame: 99, wantID: "b", found: true},
		{frame: 149, wantID: "b", found: true},
		{frame: 150, found: false},
		{frame: 199, found: false},
		{frame: 260, wantID: "c", found: true},
		{frame: 300, wantID: "d", found: true},
		{frame: 399, wantID: "d", found: true},
		{frame: 400, found: false},
		{frame: -1, found: false},
	}

	loc := NewLocator(tl)
	for _, tc := range tests {
		got, ok := loc.Find(tc.frame)
		if ok != tc.found {
			t.Fatalf("Find(%d) found = %v, want %v", tc.frame, ok, tc.found)
		}
		if ok && got.ID != tc.wantID {
			t.Fatalf("Find(%d) = %q, want %q", tc.frame, got.ID, tc.wantID)
		}
		if one, ok2 := FindOwningClip(tc.frame, tl); ok2 != ok || one.ID != got.ID {
			t.Fatalf("FindOwningClip(%d) disagrees with Locator", tc.frame)
		}
	}
}

func TestFindOwningClipOverlapSameTrack(t *testing.T) {
	tl := Timeline{
		FrameRate: 25,
		Clips: []MediaClip{
			{ID: "late", TimelineStart: 10, TimelineEnd: 20},
			{ID: "long", TimelineStart: 0, TimelineEnd: 100},
			{ID: "short", TimelineStart: 5, TimelineEnd: 8},
		},
	}
	got, ok := FindOwningClip(15, tl)
	if !ok || got.ID != "long" {
		t.Fatalf("FindOwningClip(15) = %q, %v; want earliest-starting clip \"long\"", got.ID, ok)
	}
	if tl.Clips[0].ID != "late" {
		t.Fatalf("locator reordered the input clips")
	}
}

func TestTracksAndEnd(t *testing.T) {
	tl := Timeline{Clips: []MediaClip{
		{TrackIndex: 3, TimelineEnd: 10},
		{TrackIndex: 0, TimelineEnd: 40},
		{TrackIndex: 3, TimelineEnd: 20},
	}}
	tracks := tl.Tracks()
	if len(tracks) != 2 || tracks[0] != 0 || tracks[1] != 3 {
		t.Fatalf("Tracks() = %v, want [0 3]", tracks)
	}
	if tl.End() != 40 {
		t.Fatalf("End() = %d, want 40", tl.End())
	}
}
