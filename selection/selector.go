package selection

import (
	"context"
	"strings"

	"cutlist/subtitle"
)

// Selector picks segment ids for an editorial goal. Implementations may call out
// to a model or a person; the compiler only sees the ids.
type Selector interface {
	Select(ctx context.Context, segs []subtitle.Segment, goal string) ([]int, error)
}

// Static returns a fixed list of ids as given. Unknown ids are left in so the
// compiler can report them as unmatched.
type Static struct {
	IDs []int
}

func (s Static) Select(ctx context.Context, segs []subtitle.Segment, goal string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]int(nil), s.IDs...), nil
}

// Keyword selects segments whose text contains any word of the goal, case
// insensitively. Words shorter than MinLength are ignored.
type Keyword struct {
	MinLength int
}

func (k Keyword) Select(ctx context.Context, segs []subtitle.Segment, goal string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	minLen := k.MinLength
	if minLen <= 0 {
		minLen = 3
	}
	var words []string
	for _, w := range strings.Fields(strings.ToLower(goal)) {
		w = strings.Trim(w, ".,;:!?\"'")
		if len(w) >= minLen {
			words = append(words, w)
		}
	}

	var out []int
	for _, seg := range segs {
		text := strings.ToLower(seg.Text)
		for _, w := range words {
			if strings.Contains(text, w) {
				out = append(out, seg.ID)
				break
			}
		}
	}
	return out, nil
}
