package errors

import (
	"strings"
	"unicode"
)

// ValidateMemberID validates a member identifier for safety and correctness.
// IDs come from user-edited JSON, so the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators (IDs end up in cache keys and file names)
//   - Maximum length of 128 characters
func ValidateMemberID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMember, "member ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidMember, "member ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMember, "member ID contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidMember, "member ID cannot contain path separators")
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
