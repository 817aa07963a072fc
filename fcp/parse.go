package fcp

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"cutlist/timeline"
)

// ParseFile reads an FCPXML document from disk.
func ParseFile(path string) (*FCPXML, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FCPXML file: %v", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes an FCPXML document.
func Parse(r io.Reader) (*FCPXML, error) {
	var doc FCPXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse FCPXML: %v", err)
	}
	return &doc, nil
}

// ToTimeline flattens the first sequence of the document into a timeline.
// Spine clips are track 0; connected clips above the storyline take their lane
// as track index.
func ToTimeline(doc *FCPXML) (timeline.Timeline, error) {
	seq, err := firstSequence(doc)
	if err != nil {
		return timeline.Timeline{}, err
	}

	var format *Format
	for i := range doc.Resources.Formats {
		if doc.Resources.Formats[i].ID == seq.Format {
			format = &doc.Resources.Formats[i]
			break
		}
	}
	if format == nil {
		return timeline.Timeline{}, fmt.Errorf("sequence format %q not found in resources", seq.Format)
	}

	frameNum, frameDen, err := ParseRational(format.FrameDuration)
	if err != nil {
		return timeline.Timeline{}, err
	}
	if frameNum <= 0 {
		return timeline.Timeline{}, timeline.ErrInvalidTimebase
	}

	c := &converter{
		frameNum: int(frameNum),
		frameDen: int(frameDen),
		assets:   make(map[string]Asset),
	}
	for _, a := range doc.Resources.Assets {
		c.assets[a.ID] = a
	}

	tl := timeline.Timeline{
		FrameRate: timeline.FrameRateFromDuration(int(frameNum), int(frameDen)),
	}
	tl.Width, _ = strconv.Atoi(format.Width)
	tl.Height, _ = strconv.Atoi(format.Height)

	for _, clip := range seq.Spine.AssetClips {
		if err := c.addSpineClip(clip); err != nil {
			return timeline.Timeline{}, err
		}
	}
	for _, gap := range seq.Spine.Gaps {
		if err := c.addConnected(gap.Offset, gap.Start, gap.AssetClips); err != nil {
			return timeline.Timeline{}, err
		}
	}

	timeline.SortClips(c.clips)
	tl.Clips = c.clips
	return tl, nil
}

func firstSequence(doc *FCPXML) (*Sequence, error) {
	for ei := range doc.Library.Events {
		for pi := range doc.Library.Events[ei].Projects {
			p := &doc.Library.Events[ei].Projects[pi]
			if len(p.Sequences) > 0 {
				return &p.Sequences[0], nil
			}
		}
	}
	return nil, fmt.Errorf("no sequence found in FCPXML")
}

type converter struct {
	frameNum int
	frameDen int
	assets   map[string]Asset
	clips    []timeline.MediaClip
	seq      int
}

func (c *converter) frames(value string) (int, error) {
	return TimeToFrames(value, c.frameNum, c.frameDen)
}

func (c *converter) addSpineClip(clip AssetClip) error {
	offset, err := c.frames(clip.Offset)
	if err != nil {
		return err
	}
	if err := c.addClip(clip, 0, offset); err != nil {
		return err
	}
	return c.addConnected(clip.Offset, clip.Start, clip.AssetClips)
}

// addConnected places clips attached to a parent at parent.offset + (child.offset - parent.start).
func (c *converter) addConnected(parentOffset, parentStart string, children []AssetClip) error {
	if len(children) == 0 {
		return nil
	}
	pOffset, err := c.frames(parentOffset)
	if err != nil {
		return err
	}
	pStart, err := c.frames(parentStart)
	if err != nil {
		return err
	}
	for _, child := range children {
		lane, _ := strconv.Atoi(child.Lane)
		if lane <= 0 {
			continue
		}
		cOffset, err := c.frames(child.Offset)
		if err != nil {
			return err
		}
		if err := c.addClip(child, lane, pOffset+(cOffset-pStart)); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) addClip(clip AssetClip, track, timelineStart int) error {
	asset, ok := c.assets[clip.Ref]
	if !ok {
		return nil
	}
	start, err := c.frames(clip.Start)
	if err != nil {
		return err
	}
	duration, err := c.frames(clip.Duration)
	if err != nil {
		return err
	}
	assetStart, err := c.frames(asset.Start)
	if err != nil {
		return err
	}
	if duration <= 0 {
		return nil
	}

	c.seq++
	name := clip.Name
	if name == "" {
		name = asset.Name
	}
	sourceIn := start - assetStart
	c.clips = append(c.clips, timeline.MediaClip{
		ID:            fmt.Sprintf("clip-%d", c.seq),
		Name:          name,
		TimelineStart: timelineStart,
		TimelineEnd:   timelineStart + duration,
		SourceIn:      sourceIn,
		SourceOut:     sourceIn + duration,
		FileID:        asset.ID,
		FilePath:      mediaPath(asset.MediaRep.Src),
		MasterClipID:  asset.UID,
		TrackIndex:    track,
	})
	return nil
}

func mediaPath(src string) string {
	if !strings.HasPrefix(src, "file://") {
		return src
	}
	u, err := url.Parse(src)
	if err != nil {
		return strings.TrimPrefix(src, "file://")
	}
	return u.Path
}
