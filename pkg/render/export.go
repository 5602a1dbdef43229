package render

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/The-Focus-AI/granola-skill/pkg/granola"
)

// MaxSlugLength caps the title part of export filenames.
const MaxSlugLength = 50

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases title and collapses every run of non-alphanumeric
// characters into a single dash. The result is at most MaxSlugLength
// characters and never empty.
func Slug(title string) string {
	slug := strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}

// ExportDate returns the YYYY-MM-DD creation date of doc, or "undated".
func ExportDate(doc granola.Document) string {
	if len(doc.CreatedAt) >= 10 {
		if _, ok := granola.ParseTime(doc.CreatedAt[:10] + "T00:00:00Z"); ok {
			return doc.CreatedAt[:10]
		}
	}
	if t, ok := doc.Created(); ok {
		return t.UTC().Format("2006-01-02")
	}
	return "undated"
}

// ExportFilename returns the markdown filename for doc:
// "<YYYY-MM-DD>-<slug>.md".
func ExportFilename(doc granola.Document) string {
	return ExportDate(doc) + "-" + Slug(doc.Title) + ".md"
}

// FormatExport renders the full export file for doc: YAML frontmatter
// followed by the document sections and its transcript.
func FormatExport(doc granola.Document, segments []granola.TranscriptSegment) (string, error) {
	frontmatter, err := Frontmatter(doc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(frontmatter)
	b.WriteString("---\n\n")
	writeDocument(&b, doc, documentOptions{includeNotes: true, notesPlaceholder: true})
	b.WriteString("\n## Transcript\n\n")
	b.WriteString(FormatTranscript(segments))
	b.WriteString("\n")
	return b.String(), nil
}

// Frontmatter renders the YAML header of an export file. The title is
// always double-quoted so titles containing colons stay valid YAML.
func Frontmatter(doc granola.Document) (string, error) {
	participants := &yaml.Node{Kind: yaml.SequenceNode}
	for _, name := range granola.AttendeeNames(doc) {
		participants.Content = append(participants.Content, str(name))
	}
	if len(participants.Content) == 0 {
		participants.Style = yaml.FlowStyle
	}

	title := str(Title(doc))
	title.Style = yaml.DoubleQuotedStyle

	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			str("id"), str(doc.ID),
			str("title"), title,
			str("date"), str(doc.CreatedAt),
			str("participants"), participants,
		},
	}

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	return b.String(), nil
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
