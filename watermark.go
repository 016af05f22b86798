package watermark

import (
	"context"
	"errors"
	"image"
	"runtime"

	"github.com/yyyoichi/watermark_lf/internal/dct"
	"github.com/yyyoichi/watermark_lf/internal/watermark"
	"github.com/yyyoichi/watermark_lf/mark"
)

var (
	// ErrInvalidOption is wrapped by New when an option value is out of range.
	ErrInvalidOption = errors.New("invalid option")
	// ErrTooLarge is returned when an image has more pixels than the transform supports.
	ErrTooLarge = watermark.ErrTooLarge
	// ErrInvalidMark is returned when a mark value is NaN or infinite.
	ErrInvalidMark = watermark.ErrInvalidMark
)

// Embed embeds a mark into an image with the specified options.
// This is a convenience function that creates a Watermark instance and calls its Embed method.
func Embed(ctx context.Context, src image.Image, mark EmbedMark, opts ...Option) (*image.RGBA, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.Embed(ctx, src, mark)
}

// EmbedText derives a mark from text and embeds it into an image.
// This is a convenience function that creates a Watermark instance and calls its EmbedText method.
func EmbedText(ctx context.Context, src image.Image, text string, opts ...Option) (*image.RGBA, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.EmbedText(ctx, src, text)
}

type Watermark struct {
	strength float32
	workers  int
	encoder  *mark.Encoder
}

// New initializes a watermark processing structure.
// The strength and the number of conversion workers can be optionally specified.
// For default values, refer to the init function.
func New(opts ...Option) (*Watermark, error) {
	w := new(Watermark)
	if err := w.init(opts...); err != nil {
		return nil, err
	}
	return w, nil
}

// Strength returns the multiplier used by EmbedText.
func (w *Watermark) Strength() float32 { return w.strength }

// Embed embeds a mark into an image.
//
// Process:
//  1. Converts every pixel to Y, Cb, Cr and adds the mark value to Y.
//  2. Applies a type-II DCT to the whole luminance plane taken as one row-major sequence,
//     scaled by sqrt(2/N).
//  3. Applies the type-III DCT scaled by sqrt(2/N), which returns the plane to the pixel domain.
//  4. Reconstructs RGB from the new luminance and the original chrominance.
//
// The result has the dimensions of src with its origin at (0, 0). src is not modified.
// An image without pixels yields an empty image.
func (w *Watermark) Embed(ctx context.Context, src image.Image, mark EmbedMark) (*image.RGBA, error) {
	if err := watermark.CheckSize(src.Bounds()); err != nil {
		return nil, err
	}
	img := watermark.NewImageCore(src, w.workers)
	return watermark.Embed(ctx, img, mark, w.workers, nil)
}

// EmbedText derives the mark of text with the configured strength and embeds it.
// It returns a *mark.InvalidCharacterError and no image if text has a symbol outside mark.Alphabet.
func (w *Watermark) EmbedText(ctx context.Context, src image.Image, text string) (*image.RGBA, error) {
	m, err := w.encoder.Encode(text)
	if err != nil {
		return nil, err
	}
	return w.Embed(ctx, src, m)
}

func (w *Watermark) init(opts ...Option) error {
	w.strength = mark.DefaultStrength
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return err
		}
	}
	if w.workers == 0 {
		w.workers = runtime.GOMAXPROCS(0)
	}
	w.encoder = mark.NewEncoder(mark.Config{Strength: w.strength})
	return nil
}

// Batch enables efficient multiple watermark operations on a single image
// by caching the color decomposition and the DCT plans.
type Batch struct {
	original watermark.ImageSource
	dctCache *dct.Cache
}

// NewBatch creates a new Batch instance and pre-computes the color planes of the given image.
func NewBatch(src image.Image) *Batch {
	return &Batch{
		original: watermark.NewImageCore(src, runtime.GOMAXPROCS(0)),
		dctCache: dct.NewCache(),
	}
}

// Embed embeds a mark into the cached image with specified options.
// It is safe for concurrent use.
func (b *Batch) Embed(ctx context.Context, mark EmbedMark, opts ...Option) (*image.RGBA, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return watermark.Embed(ctx, b.original.Copy(), mark, w.workers, b.dctCache)
}

// EmbedText derives the mark of text and embeds it into the cached image.
func (b *Batch) EmbedText(ctx context.Context, text string, opts ...Option) (*image.RGBA, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	m, err := w.encoder.Encode(text)
	if err != nil {
		return nil, err
	}
	return watermark.Embed(ctx, b.original.Copy(), m, w.workers, b.dctCache)
}
