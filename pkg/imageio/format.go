// format.go — output container selection.
package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a lossless image container that preserves channel LSBs.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// ParseFormat accepts "png" or "bmp" in any case, with or without a dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, BMP:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use png or bmp", s)
	}
}

// FormatFromPath infers the container from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// MIME returns the content type for f.
func (f Format) MIME() string {
	switch f {
	case BMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}
