package errors

import (
	"strings"
	"unicode"
)

// Limits applied to user-supplied render options.
const (
	MaxDimension   = 10000
	MaxPaletteSize = 360

	// MaxScale bounds the PNG supersampling factor.
	MaxScale = 8
	// MaxRasterDimension bounds a rasterized side after scaling.
	MaxRasterDimension = 16384
)

// ValidateDimensions checks that a frame size is positive and bounded.
func ValidateDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "width and height must be positive (got %gx%g)", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "frame too large (max %d pixels per side)", MaxDimension)
	}
	return nil
}

// ValidateScale checks a raster scale factor and the scaled frame size.
// A zero scale is left to the caller's default.
func ValidateScale(width, height, scale float64) error {
	if scale < 0 || scale > MaxScale {
		return New(ErrCodeInvalidInput, "scale must be in (0, %d], got %g", MaxScale, scale)
	}
	if width*scale > MaxRasterDimension || height*scale > MaxRasterDimension {
		return New(ErrCodeInvalidDimensions, "raster too large: %gx%g at scale %g (max %d pixels per side)",
			width, height, scale, MaxRasterDimension)
	}
	return nil
}

// ValidateThreshold checks that a label visibility threshold is a share of
// the circle in [0, 1).
func ValidateThreshold(t float64) error {
	if t < 0 || t >= 1 {
		return New(ErrCodeInvalidInput, "label threshold must be in [0, 1), got %g", t)
	}
	return nil
}

// ValidatePaletteSize checks the number of distinguishable hue buckets.
func ValidatePaletteSize(n int) error {
	if n < 1 || n > MaxPaletteSize {
		return New(ErrCodeInvalidInput, "palette size must be in [1, %d], got %d", MaxPaletteSize, n)
	}
	return nil
}

// ValidateFilename validates an output filename for safety.
//
// Validation rules:
//   - Name cannot be empty
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	const maxLength = 500
	if len(name) > maxLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "filename cannot contain path traversal sequences (..)")
	}
	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain backslashes")
	}
	return nil
}
