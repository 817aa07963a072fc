package export

import (
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"cutlist/compiler"
	"cutlist/fcp"
	"cutlist/timeline"
)

// FCPXML builds a Final Cut Pro document whose spine plays the media cuts back to
// back. Each distinct source file becomes one asset.
func FCPXML(cuts []compiler.Cut, frameRate float64, width, height int, name string) *fcp.FCPXML {
	if width <= 0 || height <= 0 {
		width, height = 1920, 1080
	}
	if name == "" {
		name = "cutlist"
	}
	tcFormat := "NDF"
	if timeline.IsDropFrame(frameRate) {
		tcFormat = "DF"
	}

	ids := fcp.NewIDGenerator()
	formatID := ids.ReserveID()
	doc := &fcp.FCPXML{
		Version: fcp.Version,
		Resources: fcp.Resources{
			Formats: []fcp.Format{{
				ID:            formatID,
				Name:          formatName(height, frameRate),
				FrameDuration: fcp.FrameDurationString(frameRate),
				Width:         strconv.Itoa(width),
				Height:        strconv.Itoa(height),
				ColorSpace:    "1-1-1 (Rec. 709)",
			}},
		},
	}

	assetIndex := make(map[string]int)
	var spine fcp.Spine
	total := 0
	for _, cut := range cuts {
		if cut.IsGap() {
			continue
		}
		key := assetKey(cut)
		i, ok := assetIndex[key]
		if !ok {
			i = len(doc.Resources.Assets)
			assetIndex[key] = i
			doc.Resources.Assets = append(doc.Resources.Assets, fcp.Asset{
				ID:           ids.ReserveID(),
				Name:         assetName(cut),
				UID:          ids.UIDFor(key),
				Start:        "0s",
				HasVideo:     "1",
				Format:       formatID,
				VideoSources: "1",
				HasAudio:     "1",
				AudioSources: "1",
				AudioRate:    "48000",
				MediaRep: fcp.MediaRep{
					Kind: "original-media",
					Src:  fileURL(cut.FilePath),
				},
			})
		}
		asset := &doc.Resources.Assets[i]
		if end := sourceEnd(asset.Duration, frameRate); cut.SourceOut > end {
			asset.Duration = fcp.FramesToTime(cut.SourceOut, frameRate)
		}

		clipName := cut.ClipName
		if clipName == "" {
			clipName = asset.Name
		}
		spine.AssetClips = append(spine.AssetClips, fcp.AssetClip{
			Ref:       asset.ID,
			Offset:    fcp.FramesToTime(cut.TimelineIn, frameRate),
			Name:      clipName,
			Start:     fcp.FramesToTime(cut.SourceIn, frameRate),
			Duration:  fcp.FramesToTime(cut.DurationFrames, frameRate),
			TCFormat:  tcFormat,
			AudioRole: "dialogue",
		})
		if cut.TimelineOut > total {
			total = cut.TimelineOut
		}
	}

	doc.Library = fcp.Library{
		Events: []fcp.Event{{
			Name: name,
			Projects: []fcp.Project{{
				Name: name,
				Sequences: []fcp.Sequence{{
					Format:      formatID,
					Duration:    fcp.FramesToTime(total, frameRate),
					TCStart:     "0s",
					TCFormat:    tcFormat,
					AudioLayout: "stereo",
					AudioRate:   "48k",
					Spine:       spine,
				}},
			}},
		}},
	}
	return doc
}

func assetKey(cut compiler.Cut) string {
	if cut.FilePath != "" {
		return cut.FilePath
	}
	return cut.FileID
}

func assetName(cut compiler.Cut) string {
	if cut.FilePath != "" {
		return filepath.Base(cut.FilePath)
	}
	return cut.FileID
}

func sourceEnd(duration string, frameRate float64) int {
	if duration == "" {
		return 0
	}
	num, den := timeline.FrameDuration(frameRate)
	frames, err := fcp.TimeToFrames(duration, num, den)
	if err != nil {
		return 0
	}
	return frames
}

func fileURL(path string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// formatName follows Final Cut's naming, e.g. FFVideoFormat1080p2997.
func formatName(height int, frameRate float64) string {
	rate := strconv.FormatFloat(math.Round(frameRate*100)/100, 'f', -1, 64)
	return fmt.Sprintf("FFVideoFormat%dp%s", height, strings.ReplaceAll(rate, ".", ""))
}
