package errors

import (
	"strings"
	"unicode"
)

// Length limits enforced by the validators.
const (
	MaxShapeIDLength = 256
	MaxLabelLength   = 1024
	MaxPathLength    = 4096
)

// ValidateShapeID validates a shape identifier received from an untrusted
// source such as an HTTP request.
//
// Validation rules:
//   - ID cannot be empty or only whitespace
//   - Maximum length of 256 bytes
//   - No control characters
func ValidateShapeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidDiagram, "shape ID cannot be empty")
	}

	if len(id) > MaxShapeIDLength {
		return New(ErrCodeInvalidDiagram, "shape ID too long (max %d characters)", MaxShapeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "shape ID %q contains control characters", id)
		}
	}

	return nil
}

// ValidateLabel validates a shape or connection label. Empty labels are
// valid; newlines and tabs are allowed, other control characters are not.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidDiagram, "label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "label contains control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path given on the command line or in a
// configuration file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > MaxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", MaxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateCacheKey validates a key before it is mapped to a file name or
// a Redis key. Keys must be non-empty and contain no path separators,
// traversal sequences or whitespace.
func ValidateCacheKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "cache key cannot be empty")
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidInput, "cache key cannot contain path traversal sequences (..)")
	}

	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidInput, "cache key cannot contain path separators")
	}

	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "cache key contains invalid characters")
		}
	}

	return nil
}
