package errors

import (
	"strings"
	"unicode"
)

// ValidCounts bounds the accepted pick count range. The upper limit is a
// sanity cap: boards beyond 100k picks are not physically assemblable and
// the template sheets become unreadable.
const (
	MinPickCount = 1
	MaxPickCount = 100000
)

// ValidatePickCount validates a requested pick count.
// Counts below 1 make the layout solve undefined; see ErrCodeInvalidCount.
func ValidatePickCount(count int) error {
	if count < MinPickCount {
		return New(ErrCodeInvalidCount, "pick count must be >= %d, got %d", MinPickCount, count)
	}
	if count > MaxPickCount {
		return New(ErrCodeInvalidCount, "pick count too large (max %d), got %d", MaxPickCount, count)
	}
	return nil
}

// ValidateBoardDimensions validates board (image) dimensions in pixels.
// Zero-sized boards have an undefined aspect ratio and must be rejected
// before the layout solve divides by them.
func ValidateBoardDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeDegenerateBounds, "board dimensions must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidatePaletteSize validates the number of quantization colors.
func ValidatePaletteSize(k int) error {
	if k < 2 {
		return New(ErrCodeInvalidPalette, "palette size must be >= 2, got %d", k)
	}
	if k > 256 {
		return New(ErrCodeInvalidPalette, "palette size too large (max 256), got %d", k)
	}
	return nil
}

// ValidatePaperSize validates paper dimensions in inches.
func ValidatePaperSize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidPaper, "paper size must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateImagePath validates an input image path.
// It applies the same character rules as ValidateOutputPath and additionally
// rejects directory-looking paths.
func ValidateImagePath(path string) error {
	if err := ValidateOutputPath(path); err != nil {
		return err
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "image path cannot be a directory: %q", path)
	}
	return nil
}
