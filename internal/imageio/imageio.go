package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names accepted by Encode.
const (
	PNG  = "png"
	JPEG = "jpeg"
	BMP  = "bmp"
	TIFF = "tiff"
)

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Decode reads any registered format (png, jpeg, gif, bmp, tiff, webp).
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Encode writes img in format. quality is used by jpeg only.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch strings.ToLower(format) {
	case PNG:
		err = png.Encode(w, img)
	case JPEG, "jpg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF, "tif":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// ReadFile decodes the image stored at path.
func ReadFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes img to path. An empty format is inferred from the extension.
func WriteFile(path string, img image.Image, format string, quality int) (err error) {
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, img, format, quality)
}
