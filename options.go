package watermark

import (
	"fmt"
	"math"

	"github.com/yyyoichi/watermark_lf/mark"
)

type Option func(*Watermark) error

// WithStrength sets the multiplier used when a text is turned into a mark by EmbedText.
// The default is mark.DefaultStrength (0.01). NaN and infinities are rejected.
func WithStrength(strength float32) Option {
	return func(w *Watermark) error {
		if v := float64(strength); math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: strength must be finite, got %v", ErrInvalidOption, strength)
		}
		w.strength = strength
		return nil
	}
}

// WithStrengthString is WithStrength for settings read as text, such as an environment variable.
// New fails with a *mark.ParseError if s is not a finite number.
func WithStrengthString(s string) Option {
	return func(w *Watermark) error {
		strength, err := mark.ParseStrength(s)
		if err != nil {
			return err
		}
		w.strength = strength
		return nil
	}
}

// WithWorkers bounds the goroutines used for the per-pixel color conversion.
// The transform itself always runs on a single goroutine.
// Values below 1 are rejected.
func WithWorkers(n int) Option {
	return func(w *Watermark) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidOption, n)
		}
		w.workers = n
		return nil
	}
}
