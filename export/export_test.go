package export

import (
	"strings"
	"testing"

	"cutlist/compiler"
	"cutlist/fcp"
)

func sampleCuts() []compiler.Cut {
	return []compiler.Cut{
		{
			Kind: compiler.RowMedia, SequenceIndex: 1, SourceSegmentID: 1, ClipName: "Interview",
			Text: "hello there", TimelineIn: 0, TimelineOut: 50, SourceIn: 995, SourceOut: 1045,
			FileID: "r2", FilePath: "/media/interview.mov", DurationFrames: 50,
		},
		{
			Kind: compiler.RowGap, SourceSegmentID: 9, Text: "nothing here",
			TimelineIn: 50, TimelineOut: 75, SourceIn: -1, SourceOut: -1, DurationFrames: 25,
		},
		{
			Kind: compiler.RowMedia, SequenceIndex: 2, SourceSegmentID: 4, ClipName: "Broll",
			Text: "general kenobi", TimelineIn: 50, TimelineOut: 75, SourceIn: 100, SourceOut: 125,
			FileID: "r3", FilePath: "/media/broll.mov", DurationFrames: 25,
		},
	}
}

func TestEDL(t *testing.T) {
	edl := EDL(sampleCuts(), "Selects", 25)

	if !strings.Contains(edl, "TITLE: Selects") {
		t.Fatalf("missing title in EDL: %q", edl)
	}
	if !strings.Contains(edl, "FCM: NON-DROP FRAME") {
		t.Fatalf("missing non-drop-frame FCM: %q", edl)
	}
	if !strings.Contains(edl, "001  INTERVIE V     C        00:00:39:20 00:00:41:20 00:00:00:00 00:00:02:00") {
		t.Fatalf("first event line mismatch: %q", edl)
	}
	if !strings.Contains(edl, "002  BROLL    V     C        00:00:04:00 00:00:05:00 00:00:02:00 00:00:03:00") {
		t.Fatalf("second event line mismatch: %q", edl)
	}
	if strings.Contains(edl, "003") {
		t.Fatalf("gap row should not become an event: %q", edl)
	}
	if !strings.Contains(edl, "* FROM CLIP NAME:  Interview") || !strings.Contains(edl, "* SOURCE FILE:  /media/broll.mov") {
		t.Fatalf("missing comments: %q", edl)
	}
}

func TestEDLDropFrame(t *testing.T) {
	edl := EDL(sampleCuts()[:1], "Drop", 29.97)
	if !strings.Contains(edl, "FCM: DROP FRAME") {
		t.Fatalf("expected drop frame FCM, got: %q", edl)
	}
	if !strings.Contains(edl, "00:00:01;20") {
		t.Fatalf("expected drop-frame separator, got: %q", edl)
	}
}

func TestFramesToTimecode(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		fps    float64
		want   string
	}{
		{name: "zero", frames: 0, fps: 25, want: "00:00:00:00"},
		{name: "one second", frames: 25, fps: 25, want: "00:00:01:00"},
		{name: "one hour", frames: 90000, fps: 25, want: "01:00:00:00"},
		{name: "negative clamps", frames: -5, fps: 25, want: "00:00:00:00"},
		{name: "23.976 counts at 24", frames: 48, fps: 23.976, want: "00:00:02:00"},
		{name: "df before first drop", frames: 1799, fps: 29.97, want: "00:00:59;29"},
		{name: "df skips 00 and 01", frames: 1800, fps: 29.97, want: "00:01:00;02"},
		{name: "df tenth minute keeps 00", frames: 17982, fps: 29.97, want: "00:10:00;00"},
		{name: "df at 59.94", frames: 3600, fps: 59.94, want: "00:01:00;04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FramesToTimecode(tt.frames, tt.fps); got != tt.want {
				t.Errorf("FramesToTimecode(%d, %v) = %s, want %s", tt.frames, tt.fps, got, tt.want)
			}
		})
	}
}

func TestSRT(t *testing.T) {
	got := SRT(sampleCuts(), 25)
	want := "1\n00:00:00,000 --> 00:00:02,000\nhello there\n\n" +
		"2\n00:00:02,000 --> 00:00:03,000\ngeneral kenobi\n\n"
	if got != want {
		t.Errorf("SRT mismatch.\nExpected:\n%q\nGot:\n%q", want, got)
	}
}

func TestVTT(t *testing.T) {
	got := VTT(sampleCuts(), 25)
	want := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:02.000\nhello there\n\n" +
		"00:00:02.000 --> 00:00:03.000\ngeneral kenobi\n\n"
	if got != want {
		t.Errorf("VTT mismatch.\nExpected:\n%q\nGot:\n%q", want, got)
	}
}

func TestFCPXML(t *testing.T) {
	cuts := sampleCuts()
	cuts = append(cuts, compiler.Cut{
		Kind: compiler.RowMedia, SequenceIndex: 3, ClipName: "Interview", Text: "later",
		TimelineIn: 75, TimelineOut: 100, SourceIn: 3000, SourceOut: 3025,
		FileID: "r2", FilePath: "/media/interview.mov", DurationFrames: 25,
	})

	doc := FCPXML(cuts, 25, 1280, 720, "Selects")

	if len(doc.Resources.Formats) != 1 {
		t.Fatalf("expected one format, got %d", len(doc.Resources.Formats))
	}
	format := doc.Resources.Formats[0]
	if format.FrameDuration != "100/2500s" || format.Width != "1280" || format.Name != "FFVideoFormat720p25" {
		t.Errorf("unexpected format %+v", format)
	}

	if len(doc.Resources.Assets) != 2 {
		t.Fatalf("expected one asset per file, got %d", len(doc.Resources.Assets))
	}
	interview := doc.Resources.Assets[0]
	if interview.Duration != "302500/2500s" {
		t.Errorf("asset duration should reach the furthest source frame, got %s", interview.Duration)
	}
	if interview.UID != fcp.GenerateUID("/media/interview.mov") {
		t.Errorf("asset uid not derived from file name")
	}
	if interview.MediaRep.Src != "file:///media/interview.mov" {
		t.Errorf("media src = %s", interview.MediaRep.Src)
	}

	seq := doc.Library.Events[0].Projects[0].Sequences[0]
	if seq.Duration != "10000/2500s" {
		t.Errorf("sequence duration = %s", seq.Duration)
	}
	clips := seq.Spine.AssetClips
	if len(clips) != 3 {
		t.Fatalf("expected 3 spine clips (gap skipped), got %d", len(clips))
	}
	if clips[0].Offset != "0s" || clips[0].Start != "99500/2500s" || clips[0].Duration != "5000/2500s" {
		t.Errorf("first clip timing wrong: %+v", clips[0])
	}
	if clips[2].Ref != interview.ID || clips[1].Ref == interview.ID {
		t.Errorf("clips reference wrong assets: %+v", clips)
	}

	data, err := fcp.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") || !strings.Contains(string(data), "<!DOCTYPE fcpxml>") {
		t.Errorf("missing header:\n%s", data)
	}
}

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName("a/b:c\x00d", 0); got != "a_b_cd" {
		t.Errorf("SanitizeName = %q", got)
	}
	if got := SanitizeName("interview take 1", 8); got != "intervie" {
		t.Errorf("SanitizeName truncate = %q", got)
	}
}
