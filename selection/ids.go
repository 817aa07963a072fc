// Package selection turns user choices into the segment ids the compiler consumes:
// id lists, selection files, saved selections and pluggable selectors.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDs parses lists like "1,4,7-9". Ranges are inclusive; whitespace is
// ignored. Order is preserved and repeats are kept, the compiler ignores them.
func ParseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange || lo == "" {
			// a leading '-' is a negative id, not a range
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid segment id %q", part)
			}
			ids = append(ids, id)
			continue
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid range start in %q", part)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid range end in %q", part)
		}
		if end < start {
			return nil, fmt.Errorf("range %q runs backwards", part)
		}
		for id := start; id <= end; id++ {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// FormatIDs is the inverse of ParseIDs, collapsing consecutive runs into ranges.
func FormatIDs(ids []int) string {
	var parts []string
	for i := 0; i < len(ids); {
		j := i
		for j+1 < len(ids) && ids[j+1] == ids[j]+1 {
			j++
		}
		switch {
		case j == i:
			parts = append(parts, strconv.Itoa(ids[i]))
		case j == i+1:
			parts = append(parts, strconv.Itoa(ids[i]), strconv.Itoa(ids[j]))
		default:
			parts = append(parts, fmt.Sprintf("%d-%d", ids[i], ids[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
