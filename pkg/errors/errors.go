// Package errors provides common domain error types for the granola CLI.
//
// This package defines sentinel errors for the conditions a command can end
// in: a missing or unreadable cache, an unknown or ambiguous meeting ID, and
// bad command usage. Using typed errors enables consistent handling with
// errors.Is() checks.
//
// Usage:
//
//	import gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
//
//	// Return a domain error
//	return granola.Document{}, fmt.Errorf("meeting %s: %w", id, gerrors.ErrNotFound)
//
//	// Check for domain errors
//	if gerrors.IsNotFound(err) {
//	    // handle not found case
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotFound indicates the requested meeting was not found.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates a partial identifier matched more than one meeting.
	ErrAmbiguous = errors.New("ambiguous identifier")

	// ErrUsage indicates a command was invoked without a required argument.
	ErrUsage = errors.New("usage")

	// ErrSourceNotFound indicates the cache file does not exist.
	ErrSourceNotFound = errors.New("cache file not found")

	// ErrMalformedSource indicates the cache file could not be decoded.
	ErrMalformedSource = errors.New("malformed cache file")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAmbiguous reports whether any error in err's chain is ErrAmbiguous.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguous)
}

// IsUsage reports whether any error in err's chain is ErrUsage.
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

// IsSourceNotFound reports whether any error in err's chain is ErrSourceNotFound.
func IsSourceNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound)
}

// IsMalformedSource reports whether any error in err's chain is ErrMalformedSource.
func IsMalformedSource(err error) bool {
	return errors.Is(err, ErrMalformedSource)
}
