// Package render converts Granola meetings into markdown for the terminal
// and for export files. Every function is pure: inputs are never modified.
package render

import (
	"strings"
	"time"

	"github.com/The-Focus-AI/granola-skill/pkg/granola"
)

// HumanDateLayout is the layout used for meeting dates.
const HumanDateLayout = "Monday, January 2, 2006 at 3:04 PM"

// displayLocation is the zone dates and transcript times are shown in.
var displayLocation = time.Local

// documentOptions controls which optional sections writeDocument emits.
type documentOptions struct {
	includeNotes bool
	// notesPlaceholder emits the Notes heading even when notes are empty.
	notesPlaceholder bool
}

// FormatDocument renders a meeting as a markdown block: title heading,
// identifier, date, participants, summary and, when includeNotes is set
// and notes exist, the markdown notes.
func FormatDocument(doc granola.Document, includeNotes bool) string {
	var b strings.Builder
	writeDocument(&b, doc, documentOptions{includeNotes: includeNotes})
	return b.String()
}

func writeDocument(b *strings.Builder, doc granola.Document, opts documentOptions) {
	b.WriteString("# ")
	b.WriteString(Title(doc))
	b.WriteString("\n\n")

	b.WriteString("**ID:** ")
	b.WriteString(doc.ID)
	b.WriteString("\n")
	b.WriteString("**Date:** ")
	b.WriteString(HumanDate(doc.CreatedAt))
	b.WriteString("\n")

	if names := granola.AttendeeNames(doc); len(names) > 0 {
		b.WriteString("**Participants:** ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if summary := strings.TrimSpace(doc.AISummary()); summary != "" {
		b.WriteString("\n## Summary\n\n")
		b.WriteString(summary)
		b.WriteString("\n")
	}

	if !opts.includeNotes {
		return
	}
	notes := strings.TrimSpace(doc.NotesMarkdown)
	switch {
	case notes != "":
		b.WriteString("\n## Notes\n\n")
		b.WriteString(notes)
		b.WriteString("\n")
	case opts.notesPlaceholder:
		b.WriteString("\n## Notes\n\n")
		b.WriteString(NoNotes)
		b.WriteString("\n")
	}
}

// NoNotes is written in place of empty notes in export files.
const NoNotes = "_No notes recorded._"

// Title returns the meeting title, or "Untitled" when it is blank.
func Title(doc granola.Document) string {
	if t := strings.TrimSpace(doc.Title); t != "" {
		return t
	}
	return "Untitled"
}

// HumanDate formats an ISO-8601 timestamp for display in local time.
// Unparsable input is returned unchanged, and empty input as "Unknown date".
func HumanDate(ts string) string {
	t, ok := granola.ParseTime(ts)
	if !ok {
		if strings.TrimSpace(ts) == "" {
			return "Unknown date"
		}
		return ts
	}
	return t.In(displayLocation).Format(HumanDateLayout)
}

// ShortDate formats an ISO-8601 timestamp as "2006-01-02 15:04" in local
// time, for tabular listings.
func ShortDate(ts string) string {
	t, ok := granola.ParseTime(ts)
	if !ok {
		return "----------"
	}
	return t.In(displayLocation).Format("2006-01-02 15:04")
}
