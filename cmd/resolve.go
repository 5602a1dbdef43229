package cmd

import (
	"fmt"
	"strings"

	gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
	"github.com/The-Focus-AI/granola-skill/pkg/granola"
	"github.com/The-Focus-AI/granola-skill/pkg/render"
)

// IDLength is the length of a canonical Granola document identifier.
// Shorter inputs are treated as prefixes.
const IDLength = 36

// AmbiguousIDError reports a prefix that matches more than one meeting.
type AmbiguousIDError struct {
	Prefix     string
	Candidates []granola.Document
}

func (e *AmbiguousIDError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q matches %d meetings:", gerrors.ErrAmbiguous, e.Prefix, len(e.Candidates))
	for _, d := range e.Candidates {
		fmt.Fprintf(&b, "\n  %s  %s", shortID(d.ID), render.Title(d))
	}
	return b.String()
}

func (e *AmbiguousIDError) Unwrap() error {
	return gerrors.ErrAmbiguous
}

// ResolveID finds the meeting identified by input. Inputs of full length
// must match exactly. Shorter inputs are prefixes and must select exactly
// one meeting, even when one identifier equals the input.
func ResolveID(docs []granola.Document, input string) (granola.Document, error) {
	if input == "" {
		return granola.Document{}, notFound(input)
	}
	if len(input) >= IDLength {
		for _, d := range docs {
			if d.ID == input {
				return d, nil
			}
		}
		return granola.Document{}, notFound(input)
	}

	var matches []granola.Document
	for _, d := range docs {
		if strings.HasPrefix(d.ID, input) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return granola.Document{}, notFound(input)
	case 1:
		return matches[0], nil
	default:
		return granola.Document{}, &AmbiguousIDError{Prefix: input, Candidates: matches}
	}
}

func notFound(id string) error {
	return fmt.Errorf("meeting %q: %w", id, gerrors.ErrNotFound)
}

func usageError(usage string) error {
	return fmt.Errorf("%w: %s", gerrors.ErrUsage, usage)
}
