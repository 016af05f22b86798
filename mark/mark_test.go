package mark

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet(t *testing.T) {
	seen := make(map[rune]bool)
	for _, c := range Alphabet {
		require.False(t, seen[c], "duplicated symbol %q", c)
		seen[c] = true
	}
	assert.Len(t, seen, 80)
	assert.Len(t, Alphabet, 80)
}

func TestEncoderEncode(t *testing.T) {
	test := []struct {
		name     string
		text     string
		strength float32
		expected Mark
	}{
		{"empty", "", DefaultStrength, 0},
		{"hello_world", "Hello, World!", DefaultStrength, 5.35},
		{"first_symbol", "A", DefaultStrength, 0},
		{"last_symbol", " ", 1, 79},
		{"digits", "0123456789", 1, 52 + 53 + 54 + 55 + 56 + 57 + 58 + 59 + 60 + 61},
		{"zero_strength", "Hello, World!", 0, 0},
		{"strength_one", "Hello, World!", 1, 535},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder(Config{Strength: tt.strength})
			got, err := enc.Encode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, float32(tt.expected), got.Value())
		})
	}
}

func TestEncoderEncode_InvalidCharacter(t *testing.T) {
	test := []struct {
		name   string
		text   string
		char   rune
		offset int
	}{
		{"tab", "Hello\tWorld", '\t', 5},
		{"emoji", "mark🙂", '🙂', 4},
		{"newline", "\n", '\n', 0},
		{"non_ascii", "café", 'é', 3},
		{"missing_punctuation", "a-b", '-', 1},
	}
	enc := NewEncoder(DefaultConfig())
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.text)
			require.Error(t, err)
			assert.Zero(t, got)
			assert.ErrorIs(t, err, ErrInvalidCharacter)

			var ice *InvalidCharacterError
			require.ErrorAs(t, err, &ice)
			assert.Equal(t, tt.char, ice.Char)
			assert.Equal(t, tt.offset, ice.Offset)
		})
	}
}

func TestNewString(t *testing.T) {
	m, err := NewString("Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, Mark(5.35), m)

	m, err = NewString("Hello, World!", WithStrength(0.1))
	require.NoError(t, err)
	assert.InDelta(t, 53.5, m.Value(), 1e-4)

	_, err = NewString("Hello,\tWorld!")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}

func TestEncoder_Deterministic(t *testing.T) {
	enc := NewEncoder(DefaultConfig())
	a, err := enc.Encode("d.AGIT Low Frequency Watermarking.")
	require.NoError(t, err)
	b, err := enc.Encode("d.AGIT Low Frequency Watermarking.")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, DefaultStrength, enc.Strength())
}

func TestParseStrength(t *testing.T) {
	test := []struct {
		name     string
		input    string
		expected float32
		wantErr  bool
	}{
		{"default", "0.01", 0.01, false},
		{"integer", "1", 1, false},
		{"spaces", " 0.5 ", 0.5, false},
		{"negative", "-0.02", -0.02, false},
		{"empty", "", 0, true},
		{"word", "strong", 0, true},
		{"nan", "NaN", 0, true},
		{"inf", "+Inf", 0, true},
		{"overflow", "1e100", 0, true},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrength(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidStrength)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.input, pe.Value)
		})
	}

	_, err := ParseStrength("x")
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}
