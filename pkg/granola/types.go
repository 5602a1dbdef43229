// Package granola reads the Granola desktop application's local cache file
// and exposes its meetings, transcripts and participants as a read-only
// snapshot.
//
// The cache format is undocumented and changes between Granola releases.
// Unknown fields are ignored and missing fields decode to zero values.
package granola

import (
	"strings"
	"time"
)

// Document is one meeting record.
type Document struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	CreatedAt     string         `json:"created_at" yaml:"created_at"`
	UpdatedAt     string         `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	NotesMarkdown string         `json:"notes_markdown,omitempty" yaml:"notes_markdown,omitempty"`
	NotesPlain    string         `json:"notes_plain,omitempty" yaml:"notes_plain,omitempty"`
	Summary       string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Overview      string         `json:"overview,omitempty" yaml:"overview,omitempty"`
	People        *People        `json:"people,omitempty" yaml:"people,omitempty"`
	CalendarEvent *CalendarEvent `json:"google_calendar_event,omitempty" yaml:"google_calendar_event,omitempty"`
	Type          string         `json:"type,omitempty" yaml:"type,omitempty"`
	Status        string         `json:"status,omitempty" yaml:"status,omitempty"`
	DeletedAt     string         `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"`
}

// Created returns the parsed creation time.
// ok is false when CreatedAt is empty or not a recognised timestamp.
func (d Document) Created() (t time.Time, ok bool) {
	return ParseTime(d.CreatedAt)
}

// AISummary returns the summary, falling back to the overview.
func (d Document) AISummary() string {
	if s := strings.TrimSpace(d.Summary); s != "" {
		return d.Summary
	}
	return d.Overview
}

// Attendees returns the attendee list, or nil when no participant
// information was recorded.
func (d Document) Attendees() []Person {
	if d.People == nil {
		return nil
	}
	return d.People.Attendees
}

// People is the structured participant information of a meeting.
type People struct {
	Creator   *Person  `json:"creator,omitempty" yaml:"creator,omitempty"`
	Attendees []Person `json:"attendees,omitempty" yaml:"attendees,omitempty"`
}

// Person is a meeting participant. Granola enriches some participants with
// a Details record resolved from the calendar provider.
type Person struct {
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Email   string         `json:"email,omitempty" yaml:"email,omitempty"`
	Details *PersonDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

// PersonDetails holds the enrichment data for a participant.
type PersonDetails struct {
	Person  *PersonProfile `json:"person,omitempty" yaml:"person,omitempty"`
	Company *Company       `json:"company,omitempty" yaml:"company,omitempty"`
}

// PersonProfile is the resolved identity of a participant.
type PersonProfile struct {
	Name   *PersonName `json:"name,omitempty" yaml:"name,omitempty"`
	Avatar string      `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// PersonName is a resolved participant name.
type PersonName struct {
	FullName string `json:"fullName,omitempty" yaml:"full_name,omitempty"`
}

// Company is the organisation a participant belongs to.
type Company struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// CalendarEvent is the calendar entry a meeting was created from.
type CalendarEvent struct {
	Summary   string             `json:"summary,omitempty" yaml:"summary,omitempty"`
	Start     *EventTime         `json:"start,omitempty" yaml:"start,omitempty"`
	End       *EventTime         `json:"end,omitempty" yaml:"end,omitempty"`
	HTMLLink  string             `json:"htmlLink,omitempty" yaml:"html_link,omitempty"`
	Attendees []CalendarAttendee `json:"attendees,omitempty" yaml:"attendees,omitempty"`
}

// EventTime is a calendar start or end time.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty" yaml:"date_time,omitempty"`
	TimeZone string `json:"timeZone,omitempty" yaml:"time_zone,omitempty"`
}

// CalendarAttendee is an invitee on the calendar event.
type CalendarAttendee struct {
	Email          string `json:"email,omitempty" yaml:"email,omitempty"`
	DisplayName    string `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty" yaml:"response_status,omitempty"`
}

// Transcript sources recorded by Granola.
const (
	SourceMicrophone = "microphone"
	SourceSystem     = "system"
)

// TranscriptSegment is one timestamped utterance of a meeting transcript.
// Segments with IsFinal false may still be revised by Granola.
type TranscriptSegment struct {
	ID             string `json:"id" yaml:"id"`
	DocumentID     string `json:"document_id" yaml:"document_id"`
	StartTimestamp string `json:"start_timestamp" yaml:"start_timestamp"`
	EndTimestamp   string `json:"end_timestamp,omitempty" yaml:"end_timestamp,omitempty"`
	Text           string `json:"text" yaml:"text"`
	Source         string `json:"source,omitempty" yaml:"source,omitempty"`
	IsFinal        bool   `json:"is_final" yaml:"is_final"`
}

// Speaker labels the side of the call the segment was captured from:
// "me" for the microphone, "others" for system audio, "" when unknown.
func (s TranscriptSegment) Speaker() string {
	switch s.Source {
	case SourceMicrophone:
		return "me"
	case SourceSystem:
		return "others"
	}
	return ""
}

// Start returns the parsed start time of the segment.
func (s TranscriptSegment) Start() (time.Time, bool) {
	return ParseTime(s.StartTimestamp)
}

// timeLayouts are tried in order by ParseTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTime parses the ISO-8601 timestamps found in the cache.
// Timestamps without a zone are interpreted as UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
