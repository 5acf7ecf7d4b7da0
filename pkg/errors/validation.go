package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates a scene identifier (object or mesh name) before it is
// written as an EGG entry name. what describes the identifier in messages.
//
// Names end up verbatim on an entry header line, so the rules reject anything
// that would break the line-oriented format:
//   - No empty names
//   - No control characters (including newlines)
//   - No braces or angle brackets
//   - Maximum length of 256 characters
func ValidateName(what, name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "%s name cannot be empty", what)
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidScene, "%s name too long (max 256 characters)", what)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "%s name %q contains control characters", what, name)
		}
	}

	if strings.ContainsAny(name, "{}<>") {
		return New(ErrCodeInvalidScene, "%s name %q contains reserved characters", what, name)
	}

	return nil
}

// ValidatePath validates an output or input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
