package granola

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	full := func(name string) *PersonDetails {
		return &PersonDetails{Person: &PersonProfile{Name: &PersonName{FullName: name}}}
	}

	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{"resolved full name wins", Person{Name: "raw", Email: "a@example.com", Details: full("Ada Lovelace")}, "Ada Lovelace"},
		{"email before raw name", Person{Name: "Ada", Email: "a@example.com"}, "a@example.com"},
		{"raw name alone is dropped", Person{Name: "Ada"}, ""},
		{"email fallback", Person{Email: "a@example.com"}, "a@example.com"},
		{"blank full name falls through", Person{Email: "a@example.com", Details: full("  ")}, "a@example.com"},
		{"details without person", Person{Email: "a@example.com", Details: &PersonDetails{}}, "a@example.com"},
		{"nothing", Person{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.person))
		})
	}
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "", CompanyName(Person{}))
	assert.Equal(t, "Acme", CompanyName(Person{Details: &PersonDetails{Company: &Company{Name: "Acme"}}}))
}

func TestAttendeeNames_DropsUnnamed(t *testing.T) {
	doc := Document{People: &People{Attendees: []Person{
		{Email: "a@example.com"},
		{},
		{Name: "Bo"},
		{Name: "Cy", Email: "cy@example.com"},
	}}}

	assert.Equal(t, []string{"a@example.com", "cy@example.com"}, AttendeeNames(doc))
	assert.Empty(t, AttendeeNames(Document{}))
}

func TestDocument_AISummary(t *testing.T) {
	assert.Equal(t, "sum", Document{Summary: "sum", Overview: "over"}.AISummary())
	assert.Equal(t, "over", Document{Overview: "over"}.AISummary())
	assert.Equal(t, "", Document{}.AISummary())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-01-15T10:30:00.000Z", true, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00Z", true, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00.123456", true, time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.UTC)},
		{"2024-01-15 10:30:00", true, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"yesterday", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestTranscriptSegment_Speaker(t *testing.T) {
	assert.Equal(t, "me", TranscriptSegment{Source: SourceMicrophone}.Speaker())
	assert.Equal(t, "others", TranscriptSegment{Source: SourceSystem}.Speaker())
	assert.Equal(t, "", TranscriptSegment{}.Speaker())
}
