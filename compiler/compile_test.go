package compiler

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"cutlist/subtitle"
	"cutlist/timeline"
)

func exampleTimeline() timeline.Timeline {
	return timeline.Timeline{
		FrameRate: 25,
		Width:     1920,
		Height:    1080,
		Clips: []timeline.MediaClip{
			{
				ID:            "clip-a",
				Name:          "A",
				TimelineStart: 0,
				TimelineEnd:   500,
				SourceIn:      1000,
				SourceOut:     1500,
				FileID:        "file-a",
				FilePath:      "/media/a.mov",
				MasterClipID:  "master-a",
			},
		},
	}
}

func exampleSegments() []subtitle.Segment {
	return []subtitle.Segment{
		{ID: 1, Start: 0.0, End: 1.0, Text: "a"},
		{ID: 2, Start: 1.04, End: 2.0, Text: "b"},
	}
}

func TestCompileWorkedExample(t *testing.T) {
	res, err := Compile(exampleTimeline(), exampleSegments(), []int{1, 2}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(res.Cuts) != 1 {
		t.Fatalf("Expected segments to fuse into 1 cut, got %d: %+v", len(res.Cuts), res.Cuts)
	}

	want := Cut{
		Kind:            RowMedia,
		SequenceIndex:   1,
		SourceSegmentID: 1,
		SegmentIDs:      []int{1, 2},
		ClipName:        "A",
		Text:            "a b",
		TimelineIn:      0,
		TimelineOut:     60,
		SourceIn:        995,
		SourceOut:       1055,
		FileID:          "file-a",
		FilePath:        "/media/a.mov",
		DurationFrames:  60,
		MasterClipID:    "master-a",
	}
	if !reflect.DeepEqual(res.Cuts[0], want) {
		t.Errorf("cut mismatch\n got: %+v\nwant: %+v", res.Cuts[0], want)
	}
	if res.Matched != 2 || len(res.Dropped) != 0 {
		t.Errorf("Expected 2 matched and no drops, got %d matched, %v dropped", res.Matched, res.Dropped)
	}
	if res.TotalFrames() != 60 {
		t.Errorf("TotalFrames() = %d, want 60", res.TotalFrames())
	}
}

func TestCompileSelectionOrderDoesNotMatter(t *testing.T) {
	tl := exampleTimeline()
	segs := []subtitle.Segment{
		{ID: 1, Start: 0, End: 2, Text: "one"},
		{ID: 2, Start: 5, End: 6, Text: "two"},
		{ID: 3, Start: 10, End: 11, Text: "three"},
	}
	asc, err := Compile(tl, segs, []int{1, 2, 3}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	desc, err := Compile(tl, segs, []int{3, 2, 1}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !reflect.DeepEqual(asc, desc) {
		t.Fatalf("reverse selection produced different cuts\nasc:  %+v\ndesc: %+v", asc.Cuts, desc.Cuts)
	}
	if len(asc.Cuts) != 3 || asc.Cuts[0].Text != "one" || asc.Cuts[2].Text != "three" {
		t.Fatalf("Expected three chronological cuts, got %+v", asc.Cuts)
	}
}

func TestCompileOrdersByTimeNotID(t *testing.T) {
	tl := exampleTimeline()
	segs := []subtitle.Segment{
		{ID: 10, Start: 8, End: 9, Text: "late"},
		{ID: 2, Start: 1, End: 2, Text: "early"},
	}
	res, err := Compile(tl, segs, []int{10, 2}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(res.Cuts) != 2 || res.Cuts[0].Text != "early" || res.Cuts[1].Text != "late" {
		t.Fatalf("Expected early before late, got %+v", res.Cuts)
	}
}

func TestCompileUnknownAndDuplicateIDsIgnored(t *testing.T) {
	tl := exampleTimeline()
	segs := []subtitle.Segment{
		{ID: 1, Start: 0, End: 2, Text: "one"},
		{ID: 2, Start: 5, End: 6, Text: "two"},
	}
	base, err := Compile(tl, segs, []int{1, 2}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	noisy, err := Compile(tl, segs, []int{99, 2, 1, 2, 42}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !reflect.DeepEqual(base, noisy) {
		t.Fatalf("unknown ids changed the result\nbase:  %+v\nnoisy: %+v", base, noisy)
	}
}

func TestCompileEmptySelection(t *testing.T) {
	res, err := Compile(exampleTimeline(), exampleSegments(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile with no selection returned error: %v", err)
	}
	if res.Cuts == nil || len(res.Cuts) != 0 {
		t.Fatalf("Expected empty non-nil cut list, got %#v", res.Cuts)
	}

	_, err = Compile(exampleTimeline(), exampleSegments(), []int{7, 8}, DefaultOptions())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("Expected ErrEmptySelection, got %v", err)
	}
}

func TestCompileInvalidInput(t *testing.T) {
	tl := exampleTimeline()
	tl.FrameRate = 0
	if _, err := Compile(tl, exampleSegments(), []int{1}, DefaultOptions()); !errors.Is(err, ErrInvalidTimebase) {
		t.Fatalf("Expected ErrInvalidTimebase, got %v", err)
	}

	opts := DefaultOptions()
	opts.TailPadding = -1
	if _, err := Compile(exampleTimeline(), exampleSegments(), []int{1}, opts); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestCompileDropsGapSegments(t *testing.T) {
	tl := exampleTimeline() // covers 0..20s
	segs := []subtitle.Segment{
		{ID: 1, Start: 1, End: 2, Text: "inside"},
		{ID: 2, Start: 30, End: 31, Text: "gap"},
		{ID: 3, Start: 3, End: 3.01, Text: "sub-frame"},
	}
	res, err := Compile(tl, segs, []int{1, 2, 3}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(res.Cuts) != 1 || res.Cuts[0].SourceSegmentID != 1 {
		t.Fatalf("Expected only segment 1 to survive, got %+v", res.Cuts)
	}
	wantDrops := []Drop{{SegmentID: 2, Reason: DropGap}, {SegmentID: 3, Reason: DropDegenerate}}
	if !reflect.DeepEqual(res.Dropped, wantDrops) {
		t.Fatalf("Dropped = %+v, want %+v", res.Dropped, wantDrops)
	}
	if res.Matched != 3 {
		t.Fatalf("Matched = %d, want 3", res.Matched)
	}
}

func TestCompileAllDroppedIsNotAnError(t *testing.T) {
	segs := []subtitle.Segment{{ID: 5, Start: 60, End: 61, Text: "nothing here"}}
	res, err := Compile(exampleTimeline(), segs, []int{5}, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(res.Cuts) != 0 || len(res.Dropped) != 1 {
		t.Fatalf("Expected zero cuts and one drop, got %+v", res)
	}
}

func TestCompileDoesNotMutateInputs(t *testing.T) {
	tl := exampleTimeline()
	tl.Clips = append(tl.Clips, timeline.MediaClip{ID: "b", TimelineStart: 0, TimelineEnd: 10, SourceOut: 10, TrackIndex: 4})
	segs := []subtitle.Segment{
		{ID: 3, Start: 9, End: 10, Text: "c"},
		{ID: 1, Start: 0, End: 1, Text: "a"},
	}
	selected := []int{3, 1}

	tlCopy := tl
	tlCopy.Clips = append([]timeline.MediaClip(nil), tl.Clips...)
	segsCopy := append([]subtitle.Segment(nil), segs...)
	selCopy := append([]int(nil), selected...)

	if _, err := Compile(tl, segs, selected, DefaultOptions()); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !reflect.DeepEqual(tl, tlCopy) || !reflect.DeepEqual(segs, segsCopy) || !reflect.DeepEqual(selected, selCopy) {
		t.Fatalf("Compile mutated its inputs")
	}
}

// randomScenario builds a multi-clip, multi-file timeline with gaps and a
// transcript covering it, including segments that fall in the gaps. Clips on
// higher tracks overlap track 0 and sometimes fill its gaps.
func randomScenario(r *rand.Rand) (timeline.Timeline, []subtitle.Segment) {
	fps := []float64{24, 25, 30000.0 / 1001.0, 30, 50}[r.Intn(5)]
	files := []string{"f1", "f2", "f3"}

	tl := timeline.Timeline{FrameRate: fps}
	pos := 0
	for i := 0; i < 2+r.Intn(6); i++ {
		pos += r.Intn(3) * 40 // optional gap
		length := 20 + r.Intn(200)
		in := r.Intn(400)
		tl.Clips = append(tl.Clips, timeline.MediaClip{
			ID:            "c" + string(rune('a'+i)),
			Name:          "clip",
			TimelineStart: pos,
			TimelineEnd:   pos + length,
			SourceIn:      in,
			SourceOut:     in + length,
			FileID:        files[r.Intn(len(files))],
		})
		pos += length
	}
	upper := r.Intn(4)
	for i := 0; i < upper; i++ {
		start := r.Intn(pos)
		length := 20 + r.Intn(150)
		in := r.Intn(400)
		tl.Clips = append(tl.Clips, timeline.MediaClip{
			ID:            "u" + string(rune('a'+i)),
			Name:          "upper",
			TimelineStart: start,
			TimelineEnd:   start + length,
			SourceIn:      in,
			SourceOut:     in + length,
			FileID:        files[r.Intn(len(files))],
			TrackIndex:    1 + r.Intn(2),
		})
	}
	timeline.SortClips(tl.Clips)

	var segs []subtitle.Segment
	t := 0.0
	end := float64(pos) / fps
	for id := 1; t < end; id++ {
		t += r.Float64() * 0.3
		length := 0.05 + r.Float64()*2
		segs = append(segs, subtitle.Segment{ID: id * 3, Start: t, End: t + length, Text: "w"})
		t += length
	}
	return tl, segs
}

// readBound is the furthest source frame a cut may reach: the out point of the
// clip owning one of its fused segments.
func readBound(tl timeline.Timeline, byID map[int]subtitle.Segment, c Cut) int {
	bound := 0
	for _, id := range c.SegmentIDs {
		clip, ok := timeline.FindOwningClip(timeline.TimeToFrame(byID[id].Start, tl.FrameRate), tl)
		if !ok {
			return -1
		}
		if clip.FileID != c.FileID {
			continue
		}
		if clip.SourceOut > bound {
			bound = clip.SourceOut
		}
	}
	return bound
}

func TestCompileProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 300; iter++ {
		tl, segs := randomScenario(r)
		byID := subtitle.Index(segs)

		var selected []int
		for _, s := range segs {
			if r.Intn(2) == 0 {
				selected = append(selected, s.ID)
			}
		}
		if len(selected) == 0 {
			selected = []int{segs[0].ID}
		}
		opts := Options{HeadPadding: r.Intn(10), TailPadding: r.Intn(10), MergeTolerance: r.Intn(4)}

		res, err := Compile(tl, segs, selected, opts)
		if err != nil {
			t.Fatalf("iteration %d: Compile failed: %v", iter, err)
		}

		running := 0
		for i, c := range res.Cuts {
			if c.TimelineIn != running {
				t.Fatalf("iteration %d: cut %d starts at %d, want %d", iter, i, c.TimelineIn, running)
			}
			if c.DurationFrames < 1 ||
				c.DurationFrames != c.TimelineOut-c.TimelineIn ||
				c.DurationFrames != c.SourceOut-c.SourceIn {
				t.Fatalf("iteration %d: inconsistent durations in %+v", iter, c)
			}
			if c.SourceIn < 0 || c.SourceOut > readBound(tl, byID, c) {
				t.Fatalf("iteration %d: out of bounds read in %+v", iter, c)
			}
			if c.SequenceIndex != i+1 {
				t.Fatalf("iteration %d: sequence index %d at position %d", iter, c.SequenceIndex, i)
			}
			running = c.TimelineOut
		}

		reversed := make([]int, len(selected))
		for i, id := range selected {
			reversed[len(selected)-1-i] = id
		}
		again, err := Compile(tl, segs, reversed, opts)
		if err != nil {
			t.Fatalf("iteration %d: Compile reversed failed: %v", iter, err)
		}
		if !reflect.DeepEqual(res.Cuts, again.Cuts) {
			t.Fatalf("iteration %d: reversed selection changed the cut list", iter)
		}

		for _, d := range res.Dropped {
			for _, c := range res.Cuts {
				for _, id := range c.SegmentIDs {
					if id == d.SegmentID {
						t.Fatalf("iteration %d: dropped segment %d appears in output", iter, id)
					}
				}
			}
		}
	}
}
