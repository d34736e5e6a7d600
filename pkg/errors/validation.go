package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateImage checks that an image descriptor can be laid out: a
// non-empty identifier and finite, strictly positive dimensions.
func ValidateImage(id string, width, height float64) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "image identifier cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "image identifier %q contains control characters", id)
		}
	}
	if !positive(width) || !positive(height) {
		return New(ErrCodeInvalidDimensions, "image %q has invalid dimensions %gx%g", id, width, height)
	}
	return nil
}

// ValidateAspect checks a viewport aspect ratio (width / height).
func ValidateAspect(aspect float64) error {
	if !positive(aspect) {
		return New(ErrCodeInvalidAspect, "viewport aspect ratio must be positive, got %g", aspect)
	}
	return nil
}

// ValidateKey validates an image key used as a deep-link fragment.
// Keys are derived from identifiers and end up in URLs, so whitespace,
// '#' and control characters are rejected.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "image key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "image key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == '#' {
			return New(ErrCodeInvalidKey, "image key %q contains invalid character %q", key, r)
		}
	}
	return nil
}

// ValidatePath validates a relative path inside an image directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
