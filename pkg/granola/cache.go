package granola

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/The-Focus-AI/granola-skill/pkg/logging"
)

// Cache is a read-only snapshot of the Granola cache file.
// Documents keep the order in which they appear in the file.
type Cache struct {
	path        string
	docs        []Document
	index       map[string]int
	transcripts map[string][]TranscriptSegment
	now         func() time.Time
	logger      logging.Logger
}

func newCache(opts ...Option) *Cache {
	c := &Cache{
		index:       make(map[string]int),
		transcripts: make(map[string][]TranscriptSegment),
		now:         time.Now,
		logger:      logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) add(key string, doc Document) {
	if i, ok := c.index[key]; ok {
		c.docs[i] = doc
		return
	}
	c.index[key] = len(c.docs)
	c.docs = append(c.docs, doc)
}

// Path returns the file the cache was loaded from, or "" for parsed data.
func (c *Cache) Path() string {
	return c.path
}

// Len returns the number of documents.
func (c *Cache) Len() int {
	return len(c.docs)
}

// Documents returns every document in file order.
func (c *Cache) Documents() []Document {
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Document looks up a document by its exact identifier.
func (c *Cache) Document(id string) (Document, bool) {
	i, ok := c.index[id]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// Transcript returns the transcript segments recorded for a document, in
// storage order. It returns an empty slice when none exist.
func (c *Cache) Transcript(id string) []TranscriptSegment {
	segments := c.transcripts[id]
	out := make([]TranscriptSegment, len(segments))
	copy(out, segments)
	return out
}

// Recent returns documents created at or after now minus days days, most
// recent first. There is no upper bound, so documents dated in the future
// are included. Documents whose creation time cannot be parsed are excluded.
func (c *Cache) Recent(days int) []Document {
	cutoff := c.now().Add(-time.Duration(days) * 24 * time.Hour)

	type dated struct {
		doc     Document
		created time.Time
	}
	var matches []dated
	for _, d := range c.docs {
		created, ok := d.Created()
		if !ok || created.Before(cutoff) {
			continue
		}
		matches = append(matches, dated{doc: d, created: created})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].created.After(matches[j].created)
	})

	out := make([]Document, len(matches))
	for i, m := range matches {
		out[i] = m.doc
	}
	return out
}

// Search returns documents whose title, plain-text notes or attendee names
// contain query, ignoring case. Results keep file order. An empty query
// matches every document.
func (c *Cache) Search(query string) []Document {
	lower := cases.Lower(language.Und)
	q := lower.String(query)

	out := make([]Document, 0)
	for _, d := range c.docs {
		if matchesQuery(d, q, lower) {
			out = append(out, d)
		}
	}
	c.logger.Debug("search complete", logging.F("query", query), logging.F("matches", len(out)))
	return out
}

func matchesQuery(d Document, q string, lower cases.Caser) bool {
	fields := [...]string{
		d.Title,
		d.NotesPlain,
		strings.Join(AttendeeNames(d), " "),
	}
	for _, f := range fields {
		if strings.Contains(lower.String(f), q) {
			return true
		}
	}
	return false
}
