package render

import "errors"

// ErrUnsupportedImageFormat is returned when an export path has an
// extension no encoder is registered for.
var ErrUnsupportedImageFormat = errors.New("render: unsupported image format")
