package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ExportOptions controls SaveImage and Encode.
type ExportOptions struct {
	// Scale enlarges the image by an integer factor with nearest
	// neighbor sampling. Values below 2 leave it unchanged.
	Scale int
}

// Image returns the canvas as an image, scaled per opts.
func (c *Canvas) Image(opts ExportOptions) image.Image {
	img := c.ToImage()
	if opts.Scale < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*opts.Scale, b.Dy()*opts.Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes the canvas to w. format is a file extension without the
// dot: png, bmp or webp.
func Encode(w io.Writer, c *Canvas, format string, opts ExportOptions) error {
	img := c.Image(opts)
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, format)
	}
}

// SaveImage writes the canvas to path, choosing the encoder from the
// file extension.
func SaveImage(c *Canvas, path string, opts ExportOptions) (err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	switch strings.ToLower(format) {
	case "png", "bmp", "webp":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := Encode(f, c, format, opts); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
