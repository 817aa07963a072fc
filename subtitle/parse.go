package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// cueTimeRegex matches "00:00:00.160 --> 00:00:02.350"; hours are optional and SRT
// uses ',' before the milliseconds.
var (
	cueTimeRegex    = regexp.MustCompile(`((?:\d+:)?\d{2}:\d{2}[.,]\d{1,3})\s+-->\s+((?:\d+:)?\d{2}:\d{2}[.,]\d{1,3})`)
	inlineTimeRegex = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
)

// ParseTime parses "HH:MM:SS.mmm", "MM:SS.mmm" or the SRT "HH:MM:SS,mmm" form
// into seconds.
func ParseTime(timeStr string) (float64, error) {
	timeStr = strings.Replace(strings.TrimSpace(timeStr), ",", ".", 1)
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hours := 0
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours in %s: %w", timeStr, err)
		}
		hours = h
		parts = parts[1:]
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %s: %w", timeStr, err)
	}

	secondsParts := strings.SplitN(parts[1], ".", 2)
	seconds, err := strconv.Atoi(secondsParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %s: %w", timeStr, err)
	}
	milliseconds := 0
	if len(secondsParts) > 1 {
		// Pad or truncate to 3 digits
		msStr := secondsParts[1]
		if len(msStr) > 3 {
			msStr = msStr[:3]
		}
		for len(msStr) < 3 {
			msStr += "0"
		}
		milliseconds, err = strconv.Atoi(msStr)
		if err != nil {
			return 0, fmt.Errorf("invalid milliseconds in %s: %w", timeStr, err)
		}
	}

	return float64(hours*3600+minutes*60+seconds) + float64(milliseconds)/1000, nil
}

// ParseFile picks the parser from the file extension (.srt or .vtt).
func ParseFile(path string) ([]Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return ParseSRT(file)
	case ".vtt":
		return ParseVTT(file)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}
}

// ParseVTT reads WebVTT cues. IDs are assigned 1..n in file order.
func ParseVTT(r io.Reader) ([]Segment, error) {
	cues, err := scanCues(r)
	if err != nil {
		return nil, err
	}
	segments := make([]Segment, 0, len(cues))
	for _, c := range cues {
		segments = append(segments, Segment{
			ID:    len(segments) + 1,
			Start: c.start,
			End:   c.end,
			Text:  c.text,
		})
	}
	return segments, nil
}

// ParseSRT reads SubRip cues. The numeric counter line becomes the segment ID
// when every counter is numeric and unique; otherwise IDs are assigned 1..n.
func ParseSRT(r io.Reader) ([]Segment, error) {
	cues, err := scanCues(r)
	if err != nil {
		return nil, err
	}

	useCounters := true
	seen := make(map[int]bool, len(cues))
	for _, c := range cues {
		n, err := strconv.Atoi(c.label)
		if err != nil || seen[n] {
			useCounters = false
			break
		}
		seen[n] = true
	}

	segments := make([]Segment, 0, len(cues))
	for i, c := range cues {
		id := i + 1
		if useCounters {
			id, _ = strconv.Atoi(c.label)
		}
		segments = append(segments, Segment{ID: id, Start: c.start, End: c.end, Text: c.text})
	}
	return segments, nil
}

type cue struct {
	label string
	start float64
	end   float64
	text  string
}

// scanCues walks timing lines and collects the text lines after each one until a
// blank line. The line right before a timing line is kept as the cue label.
func scanCues(r io.Reader) ([]cue, error) {
	var cues []cue
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	prev := ""
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		matches := cueTimeRegex.FindStringSubmatch(line)
		if matches == nil {
			prev = line
			continue
		}
		label := prev
		prev = ""

		startTime, err1 := ParseTime(matches[1])
		endTime, err2 := ParseTime(matches[2])

		var textLines []string
		for scanner.Scan() {
			textLine := strings.TrimSpace(scanner.Text())
			if textLine == "" {
				break
			}
			if cleanText := cleanCueText(textLine); cleanText != "" {
				textLines = append(textLines, cleanText)
			}
		}

		if err1 != nil || err2 != nil || endTime <= startTime || len(textLines) == 0 {
			continue
		}
		cues = append(cues, cue{
			label: label,
			start: startTime,
			end:   endTime,
			text:  strings.Join(textLines, " "),
		})
	}

	return cues, scanner.Err()
}

func cleanCueText(line string) string {
	line = inlineTimeRegex.ReplaceAllString(line, "")
	line = tagRegex.ReplaceAllString(line, "")
	return strings.Join(strings.Fields(line), " ")
}
