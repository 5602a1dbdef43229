package render

import (
	"sort"
	"strings"
	"time"

	"github.com/The-Focus-AI/granola-skill/pkg/granola"
)

// NoTranscript is returned by FormatTranscript for an empty transcript.
const NoTranscript = "No transcript available."

// FormatTranscript renders one "[15:04:05] text" line per segment, ordered
// by start time. The caller's slice is left in its original order.
func FormatTranscript(segments []granola.TranscriptSegment) string {
	if len(segments) == 0 {
		return NoTranscript
	}

	lines := make([]string, 0, len(segments))
	for _, s := range SortSegments(segments) {
		lines = append(lines, "["+clock(s)+"] "+strings.TrimSpace(s.Text))
	}
	return strings.Join(lines, "\n")
}

// SortSegments returns a copy of segments sorted ascending by start time.
// Segments with unparsable timestamps sort first. Ties are broken by raw
// timestamp, ID and text so the result does not depend on input order.
func SortSegments(segments []granola.TranscriptSegment) []granola.TranscriptSegment {
	type keyed struct {
		seg   granola.TranscriptSegment
		start time.Time
	}
	sorted := make([]keyed, len(segments))
	for i, s := range segments {
		start, _ := s.Start()
		sorted[i] = keyed{seg: s, start: start}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.start.Equal(b.start) {
			return a.start.Before(b.start)
		}
		if a.seg.StartTimestamp != b.seg.StartTimestamp {
			return a.seg.StartTimestamp < b.seg.StartTimestamp
		}
		if a.seg.ID != b.seg.ID {
			return a.seg.ID < b.seg.ID
		}
		return a.seg.Text < b.seg.Text
	})

	out := make([]granola.TranscriptSegment, len(sorted))
	for i, k := range sorted {
		out[i] = k.seg
	}
	return out
}

func clock(s granola.TranscriptSegment) string {
	t, ok := s.Start()
	if !ok {
		return "--:--:--"
	}
	return t.In(displayLocation).Format("15:04:05")
}
