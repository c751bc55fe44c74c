package errors

import (
	"strings"
	"unicode"
)

// MaxNodes bounds the node identifiers accepted from untrusted input.
const MaxNodes = 1 << 22

// ValidateNodeID validates a node identifier from untrusted input.
// Identifiers index position tables, so they must be non-negative and below
// the number of positioned nodes.
func ValidateNodeID(id int64, positioned int) error {
	if id < 0 {
		return New(ErrCodeInvalidInput, "node id %d is negative", id)
	}
	if id >= int64(positioned) {
		return New(ErrCodeInvalidInput, "node id %d has no position (embedding has %d nodes)", id, positioned)
	}
	return nil
}

// ValidateEdge validates an edge from untrusted input.
func ValidateEdge(u, v int64, positioned int) error {
	if u == v {
		return New(ErrCodeInvalidInput, "edge %d-%d is a self loop", u, v)
	}
	if err := ValidateNodeID(u, positioned); err != nil {
		return err
	}
	return ValidateNodeID(v, positioned)
}

// ValidateNodeCount rejects embeddings that are empty-negative or too large.
func ValidateNodeCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "node count %d is negative", n)
	}
	if n > MaxNodes {
		return New(ErrCodeTooLarge, "node count %d exceeds limit %d", n, MaxNodes)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
