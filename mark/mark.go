package mark

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Alphabet is the ordered symbol set a watermark text is written in.
// The value of a symbol is its 0-based index in this string.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*(),.<>/?; "

// DefaultStrength is the multiplier applied to the index sum when no strength is configured.
const DefaultStrength float32 = 0.01

var (
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidStrength  = errors.New("invalid strength")
)

// InvalidCharacterError reports a rune of the watermark text that is not part of Alphabet.
type InvalidCharacterError struct {
	Char rune
	// Offset is the byte offset of Char in the text.
	Offset int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character; %q at offset %d", e.Char, e.Offset)
}

func (e *InvalidCharacterError) Unwrap() error { return ErrInvalidCharacter }

// ParseError is returned when a strength setting cannot be read as a float.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse strength %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrInvalidStrength, e.Err} }

// Mark is the scalar watermark value derived from a text.
type Mark float32

// Value returns the amount added to every luminance sample.
func (m Mark) Value() float32 { return float32(m) }

// Config holds the encoder settings.
type Config struct {
	Strength float32
}

func DefaultConfig() Config {
	return Config{Strength: DefaultStrength}
}

// Encoder derives watermark values from texts.
type Encoder struct {
	strength float32
}

// NewEncoder returns an Encoder bound to cfg.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{strength: cfg.Strength}
}

// Strength returns the configured multiplier.
func (e *Encoder) Strength() float32 { return e.strength }

// Encode returns the sum of the alphabet indices of text multiplied by the strength.
// The sum is accumulated in float32 in input order.
// An empty text yields 0.
func (e *Encoder) Encode(text string) (Mark, error) {
	var sum float32
	for offset, c := range text {
		idx := strings.IndexRune(Alphabet, c)
		if idx < 0 {
			return 0, &InvalidCharacterError{Char: c, Offset: offset}
		}
		sum += float32(idx)
	}
	return Mark(sum * e.strength), nil
}

// NewString derives the mark of text.
// The default strength is used unless WithStrength is given.
func NewString(text string, opts ...Option) (Mark, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewEncoder(cfg).Encode(text)
}

// ParseStrength parses a strength setting such as "0.01".
func ParseStrength(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, &ParseError{Value: s, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Value: s, Err: errors.New("not a finite number")}
	}
	return float32(v), nil
}
