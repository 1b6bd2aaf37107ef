package normhash

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := hasher.HashFile(opts, "input.txt", "")
//	if errors.Is(err, normhash.ErrInputNotFound) {
//	    // Handle missing input
//	}
var (
	// ErrInputNotFound indicates the input file does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrInputUnreadable indicates the input could not be opened or a read failed.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrOutputUnwritable indicates the output could not be created or a write failed.
	ErrOutputUnwritable = errors.New("output unwritable")

	// ErrEncoding indicates a line of the input is not valid UTF-8.
	ErrEncoding = errors.New("invalid text encoding")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDigest indicates a digest string is not 64 hexadecimal characters.
	ErrInvalidDigest = errors.New("invalid digest")

	// ErrDigestMismatch indicates a computed digest differs from the expected one.
	ErrDigestMismatch = errors.New("digest mismatch")
)

// usageErrorPrefixes are the message prefixes cobra uses for argument and flag errors.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"requires at most",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidDigest):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, ErrEncoding):
		return ExitEncodingError
	case errors.Is(err, ErrInputUnreadable):
		return ExitInputUnreadable
	case errors.Is(err, ErrOutputUnwritable):
		return ExitOutputUnwritable
	case errors.Is(err, ErrDigestMismatch):
		return ExitDigestMismatch
	}

	msg := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
