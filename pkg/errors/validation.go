package errors

import (
	"strings"
	"unicode"
)

// ValidateResourceName validates a fixture resource name for safety.
// It rejects names that could be used for path traversal when the name is
// joined with a loader's configured prefix.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., //)
//   - No absolute paths or backslashes
//   - Maximum length of 256 characters
func ValidateResourceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "resource name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "resource name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "resource name contains control characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidInput, "resource name must be relative")
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "resource name contains invalid sequence: %q", pattern)
		}
	}

	return nil
}
