package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier supplied at the API or CLI
// boundary. It rejects IDs that could break key derivation or file-based
// caching downstream.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// The engine itself tolerates any non-empty ID; this is boundary hygiene,
// not an engine requirement.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNodeID, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateStrategyToken validates the shape of a layout strategy token.
// Tokens are lowercase ASCII words; anything else is rejected before it
// reaches the dispatcher. Note that a well-formed but unrecognized token is
// not an error - the dispatcher treats it as an identity no-op by contract.
func ValidateStrategyToken(s string) error {
	if s == "" {
		return New(ErrCodeInvalidStrategy, "strategy cannot be empty")
	}

	if strings.ToLower(s) != s {
		return New(ErrCodeInvalidStrategy, "strategy must be lowercase: %q", s)
	}

	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return New(ErrCodeInvalidStrategy, "strategy contains invalid character: %q", r)
		}
	}

	return nil
}
