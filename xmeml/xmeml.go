// Package xmeml reads Final Cut Pro 7 / Premiere Pro XML interchange files.
package xmeml

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cutlist/timeline"
)

type Document struct {
	XMLName   xml.Name   `xml:"xmeml"`
	Version   string     `xml:"version,attr"`
	Sequences []Sequence `xml:"sequence"`
	Projects  []Project  `xml:"project"`
}

type Project struct {
	Name      string     `xml:"name"`
	Sequences []Sequence `xml:"children>sequence"`
}

type Sequence struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name"`
	Rate  Rate   `xml:"rate"`
	Media Media  `xml:"media"`
}

type Rate struct {
	Timebase int    `xml:"timebase"`
	NTSC     string `xml:"ntsc"`
}

// FrameRate returns the effective rate; NTSC timebases run at 1000/1001 speed.
func (r Rate) FrameRate() float64 {
	if r.Timebase <= 0 {
		return 0
	}
	if strings.EqualFold(strings.TrimSpace(r.NTSC), "TRUE") {
		return float64(r.Timebase) * 1000 / 1001
	}
	return float64(r.Timebase)
}

type Media struct {
	Video Video `xml:"video"`
	Audio Audio `xml:"audio"`
}

// Audio tracks are only read for file definitions; audio clips are not placed.
type Audio struct {
	Tracks []Track `xml:"track"`
}

type Video struct {
	Format Format  `xml:"format"`
	Tracks []Track `xml:"track"`
}

type Format struct {
	Width  int `xml:"samplecharacteristics>width"`
	Height int `xml:"samplecharacteristics>height"`
}

type Track struct {
	ClipItems []ClipItem `xml:"clipitem"`
}

// ClipItem is a placement on a track. Start and End are -1 when the edge sits
// inside a transition.
type ClipItem struct {
	ID           string `xml:"id,attr"`
	MasterClipID string `xml:"masterclipid"`
	Name         string `xml:"name"`
	Start        int    `xml:"start"`
	End          int    `xml:"end"`
	In           int    `xml:"in"`
	Out          int    `xml:"out"`
	File         *File  `xml:"file"`
}

// File is either a full definition or a bare reference by id to an earlier one.
type File struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name"`
	PathURL string `xml:"pathurl"`
}

// ParseFile reads an xmeml document from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xmeml file: %v", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse xmeml: %v", err)
	}
	return &doc, nil
}

// FirstSequence returns the top-level sequence, or the first one nested in a project.
func (d *Document) FirstSequence() (*Sequence, error) {
	if len(d.Sequences) > 0 {
		return &d.Sequences[0], nil
	}
	for i := range d.Projects {
		if len(d.Projects[i].Sequences) > 0 {
			return &d.Projects[i].Sequences[0], nil
		}
	}
	return nil, fmt.Errorf("no sequence found in xmeml")
}

// ToTimeline converts the first sequence's video tracks into a timeline. Track
// index follows document order, starting at 0.
func ToTimeline(doc *Document) (timeline.Timeline, error) {
	seq, err := doc.FirstSequence()
	if err != nil {
		return timeline.Timeline{}, err
	}

	tl := timeline.Timeline{
		FrameRate: seq.Rate.FrameRate(),
		Width:     seq.Media.Video.Format.Width,
		Height:    seq.Media.Video.Format.Height,
	}

	files := collectFiles(seq)
	for trackIndex, track := range seq.Media.Video.Tracks {
		for _, item := range track.ClipItems {
			if item.Start < 0 || item.End <= item.Start || item.File == nil {
				continue
			}
			file, ok := files[item.File.ID]
			if !ok {
				continue
			}
			name := item.Name
			if name == "" {
				name = file.Name
			}
			tl.Clips = append(tl.Clips, timeline.MediaClip{
				ID:            item.ID,
				Name:          name,
				TimelineStart: item.Start,
				TimelineEnd:   item.End,
				SourceIn:      item.In,
				SourceOut:     item.Out,
				FileID:        file.ID,
				FilePath:      pathFromURL(file.PathURL),
				MasterClipID:  item.MasterClipID,
				TrackIndex:    trackIndex,
			})
		}
	}

	timeline.SortClips(tl.Clips)
	return tl, nil
}

// collectFiles indexes the first full definition of every file id. A file may be
// defined on an audio track and only referenced from the video tracks.
func collectFiles(seq *Sequence) map[string]File {
	files := make(map[string]File)
	tracks := append(append([]Track(nil), seq.Media.Video.Tracks...), seq.Media.Audio.Tracks...)
	for _, track := range tracks {
		for _, item := range track.ClipItems {
			f := item.File
			if f == nil || f.ID == "" || f.PathURL == "" {
				continue
			}
			if _, seen := files[f.ID]; !seen {
				files[f.ID] = *f
			}
		}
	}
	return files
}

func pathFromURL(pathURL string) string {
	u, err := url.Parse(pathURL)
	if err != nil || u.Scheme != "file" {
		return pathURL
	}
	return u.Path
}
