package compiler

import (
	"errors"
	"fmt"

	"cutlist/timeline"
)

// ErrInvalidOptions is returned for negative padding or tolerance values.
var ErrInvalidOptions = errors.New("invalid compiler options")

const (
	DefaultHeadPadding    = 5
	DefaultTailPadding    = 5
	DefaultMergeTolerance = 2
)

// Options are the tunable frame constants of one compilation.
type Options struct {
	HeadPadding    int `json:"head_padding"`
	TailPadding    int `json:"tail_padding"`
	MergeTolerance int `json:"merge_tolerance"`
}

// DefaultOptions returns 5 frames of padding on each side and a 2 frame merge tolerance.
func DefaultOptions() Options {
	return Options{
		HeadPadding:    DefaultHeadPadding,
		TailPadding:    DefaultTailPadding,
		MergeTolerance: DefaultMergeTolerance,
	}
}

// OptionsFromSeconds converts second-based padding and healing values into frames
// using the same floor rounding as every other boundary.
func OptionsFromSeconds(head, tail, tolerance, fps float64) Options {
	return Options{
		HeadPadding:    timeline.TimeToFrame(head, fps),
		TailPadding:    timeline.TimeToFrame(tail, fps),
		MergeTolerance: timeline.TimeToFrame(tolerance, fps),
	}
}

// Validate rejects negative values.
func (o Options) Validate() error {
	if o.HeadPadding < 0 || o.TailPadding < 0 || o.MergeTolerance < 0 {
		return fmt.Errorf("%w: head=%d tail=%d tolerance=%d",
			ErrInvalidOptions, o.HeadPadding, o.TailPadding, o.MergeTolerance)
	}
	return nil
}
