package models

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// LoadImage decodes an image file. PNG, JPEG, TGA and BMP are supported.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes r with the decoder named by format, which may be a
// file extension (".tga") or a MIME type ("image/png"). TGA has no magic
// number, so it is only ever chosen by name; anything unrecognized falls
// back to image.Decode.
func DecodeImage(r io.Reader, format string) (image.Image, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	format = strings.TrimPrefix(format, "image/")
	switch format {
	case "tga", "x-tga":
		return tga.Decode(r)
	case "png":
		return png.Decode(r)
	case "jpg", "jpeg":
		return jpeg.Decode(r)
	case "bmp":
		return bmp.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err
	}
}

// decodeBytes decodes in-memory image data, sniffing PNG and JPEG by
// their signatures when the format is not given.
func decodeBytes(data []byte, format string) (image.Image, error) {
	if format == "" {
		switch {
		case bytes.HasPrefix(data, []byte("\x89PNG")):
			format = "png"
		case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
			format = "jpeg"
		case bytes.HasPrefix(data, []byte("BM")):
			format = "bmp"
		}
	}
	return DecodeImage(bytes.NewReader(data), format)
}
