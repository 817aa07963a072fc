package cmd

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"cutlist/fcp"
	"cutlist/subtitle"
	"cutlist/timeline"
	"cutlist/xmeml"
)

// loadTimeline reads a timeline, picking the parser from the document root:
// <fcpxml> or <xmeml>. Files ending in .json are decoded as timeline.Timeline.
func loadTimeline(path string) (timeline.Timeline, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return timeline.Timeline{}, err
		}
		var tl timeline.Timeline
		if err := json.Unmarshal(data, &tl); err != nil {
			return timeline.Timeline{}, fmt.Errorf("failed to parse timeline JSON: %v", err)
		}
		timeline.SortClips(tl.Clips)
		return tl, nil
	}

	root, err := rootElement(path)
	if err != nil {
		return timeline.Timeline{}, err
	}
	switch root {
	case "fcpxml":
		doc, err := fcp.ParseFile(path)
		if err != nil {
			return timeline.Timeline{}, err
		}
		return fcp.ToTimeline(doc)
	case "xmeml":
		doc, err := xmeml.ParseFile(path)
		if err != nil {
			return timeline.Timeline{}, err
		}
		return xmeml.ToTimeline(doc)
	default:
		return timeline.Timeline{}, fmt.Errorf("%s: unsupported timeline format <%s>", path, root)
	}
}

func rootElement(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", fmt.Errorf("%s: no root element", path)
		}
		if err != nil {
			return "", fmt.Errorf("%s: %v", path, err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func loadSegments(path string) ([]subtitle.Segment, error) {
	if path == "" {
		return nil, nil
	}
	segs, err := subtitle.ParseFile(path)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded %d segments from %s\n", len(segs), path)
	return segs, nil
}

func useColor() bool {
	return !noColor && !color.NoColor
}
