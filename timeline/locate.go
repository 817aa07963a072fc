package timeline

import "sort"

// Locator answers "which clip owns this timeline frame" for one timeline.
//
// When several tracks cover the frame the lowest track index wins. Within a
// track the clip with the earliest start wins, which only matters for malformed
// input where clips on the same track overlap.
type Locator struct {
	tracks []trackClips
}

type trackClips struct {
	index  int
	clips  []MediaClip
	maxEnd []int // running max of TimelineEnd over clips[0..i]
}

// NewLocator indexes the timeline's clips per track. The timeline is not modified.
func NewLocator(t Timeline) *Locator {
	byTrack := make(map[int][]MediaClip)
	for _, c := range t.Clips {
		byTrack[c.TrackIndex] = append(byTrack[c.TrackIndex], c)
	}

	l := &Locator{}
	for _, idx := range t.Tracks() {
		clips := byTrack[idx]
		sort.SliceStable(clips, func(i, j int) bool {
			return clips[i].TimelineStart < clips[j].TimelineStart
		})
		maxEnd := make([]int, len(clips))
		for i, c := range clips {
			maxEnd[i] = c.TimelineEnd
			if i > 0 && maxEnd[i-1] > maxEnd[i] {
				maxEnd[i] = maxEnd[i-1]
			}
		}
		l.tracks = append(l.tracks, trackClips{index: idx, clips: clips, maxEnd: maxEnd})
	}
	return l
}

// Find returns the owning clip for a timeline frame, or false when the frame
// falls in a gap.
func (l *Locator) Find(frame int) (MediaClip, bool) {
	for _, tr := range l.tracks {
		if c, ok := tr.find(frame); ok {
			return c, true
		}
	}
	return MediaClip{}, false
}

func (tr trackClips) find(frame int) (MediaClip, bool) {
	// clips[:n] start at or before frame
	n := sort.Search(len(tr.clips), func(i int) bool {
		return tr.clips[i].TimelineStart > frame
	})
	// the first index whose running max end passes frame is the earliest clip covering it
	i := sort.Search(n, func(i int) bool {
		return tr.maxEnd[i] > frame
	})
	if i == n {
		return MediaClip{}, false
	}
	return tr.clips[i], true
}

// FindOwningClip is the one-shot form of Locator.Find.
func FindOwningClip(frame int, t Timeline) (MediaClip, bool) {
	return NewLocator(t).Find(frame)
}
