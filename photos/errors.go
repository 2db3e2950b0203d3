package photos

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors callers branch on with errors.Is.
var (
	// ErrInvalidInput marks a name or field that is empty after trimming or
	// otherwise unusable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptStore marks a user file that exists but cannot be decoded.
	ErrCorruptStore = errors.New("corrupt user file")
)

// ValidateUsername rejects usernames that are blank after trimming or that
// contain a path separator; the username doubles as the user file's name.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is empty", ErrInvalidInput)
	}
	if strings.ContainsAny(username, `/\`) {
		return fmt.Errorf("%w: username %q contains a path separator", ErrInvalidInput, username)
	}
	return nil
}

// ValidateName rejects blank album names, tag types, and tag values.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}
	return nil
}
