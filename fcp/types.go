// Package fcp reads and writes Final Cut Pro XML.
//
// Documents are built and decoded only through these structs; output goes
// through xml.MarshalIndent, never string templates.
package fcp

import (
	"encoding/xml"
	"sort"
)

type FCPXML struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

// Resources contains the formats and media assets referenced by the timeline.
type Resources struct {
	Formats []Format `xml:"format"`
	Assets  []Asset  `xml:"asset,omitempty"`
}

type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr,omitempty"`
	FrameDuration string `xml:"frameDuration,attr,omitempty"`
	Width         string `xml:"width,attr,omitempty"`
	Height        string `xml:"height,attr,omitempty"`
	ColorSpace    string `xml:"colorSpace,attr,omitempty"`
}

// Asset is one media file. UIDs come from GenerateUID so the same file always
// imports with the same identity.
type Asset struct {
	ID            string   `xml:"id,attr"`
	Name          string   `xml:"name,attr"`
	UID           string   `xml:"uid,attr"`
	Start         string   `xml:"start,attr"`
	HasVideo      string   `xml:"hasVideo,attr"`
	Format        string   `xml:"format,attr"`
	VideoSources  string   `xml:"videoSources,attr,omitempty"`
	HasAudio      string   `xml:"hasAudio,attr,omitempty"`
	AudioSources  string   `xml:"audioSources,attr,omitempty"`
	AudioChannels string   `xml:"audioChannels,attr,omitempty"`
	AudioRate     string   `xml:"audioRate,attr,omitempty"`
	Duration      string   `xml:"duration,attr"`
	MediaRep      MediaRep `xml:"media-rep"`
}

type MediaRep struct {
	Kind string `xml:"kind,attr"`
	Sig  string `xml:"sig,attr,omitempty"`
	Src  string `xml:"src,attr"`
}

type Library struct {
	Location string  `xml:"location,attr,omitempty"`
	Events   []Event `xml:"event"`
}

type Event struct {
	Name     string    `xml:"name,attr"`
	UID      string    `xml:"uid,attr,omitempty"`
	Projects []Project `xml:"project"`
}

type Project struct {
	Name      string     `xml:"name,attr"`
	UID       string     `xml:"uid,attr,omitempty"`
	ModDate   string     `xml:"modDate,attr,omitempty"`
	Sequences []Sequence `xml:"sequence"`
}

type Sequence struct {
	Format      string `xml:"format,attr"`
	Duration    string `xml:"duration,attr"`
	TCStart     string `xml:"tcStart,attr"`
	TCFormat    string `xml:"tcFormat,attr"`
	AudioLayout string `xml:"audioLayout,attr"`
	AudioRate   string `xml:"audioRate,attr"`
	Spine       Spine  `xml:"spine"`
}

// Spine is the primary storyline. Connected clips hang off its elements with a
// lane attribute.
type Spine struct {
	XMLName    xml.Name    `xml:"spine"`
	AssetClips []AssetClip `xml:"asset-clip,omitempty"`
	Gaps       []Gap       `xml:"gap,omitempty"`
}

// MarshalXML writes spine children in offset order regardless of element type.
func (s Spine) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	type elementWithOffset struct {
		offset  float64
		element interface{}
	}
	var elements []elementWithOffset
	for _, clip := range s.AssetClips {
		elements = append(elements, elementWithOffset{offset: offsetForSort(clip.Offset), element: clip})
	}
	for _, gap := range s.Gaps {
		elements = append(elements, elementWithOffset{offset: offsetForSort(gap.Offset), element: gap})
	}
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].offset < elements[j].offset
	})

	for _, elem := range elements {
		if err := e.Encode(elem.element); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func offsetForSort(offset string) float64 {
	seconds, err := ParseTime(offset)
	if err != nil {
		return 0
	}
	return seconds
}

type AssetClip struct {
	XMLName    xml.Name    `xml:"asset-clip"`
	Ref        string      `xml:"ref,attr"`
	Lane       string      `xml:"lane,attr,omitempty"`
	Offset     string      `xml:"offset,attr"`
	Name       string      `xml:"name,attr"`
	Start      string      `xml:"start,attr,omitempty"`
	Duration   string      `xml:"duration,attr"`
	Format     string      `xml:"format,attr,omitempty"`
	TCFormat   string      `xml:"tcFormat,attr,omitempty"`
	AudioRole  string      `xml:"audioRole,attr,omitempty"`
	AssetClips []AssetClip `xml:"asset-clip,omitempty"`
}

type Gap struct {
	XMLName    xml.Name    `xml:"gap"`
	Name       string      `xml:"name,attr"`
	Offset     string      `xml:"offset,attr"`
	Start      string      `xml:"start,attr,omitempty"`
	Duration   string      `xml:"duration,attr"`
	AssetClips []AssetClip `xml:"asset-clip,omitempty"`
}
