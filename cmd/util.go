// Package cmd provides CLI commands for the granola tool.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/The-Focus-AI/granola-skill/config"
	"github.com/The-Focus-AI/granola-skill/pkg/granola"
	"github.com/The-Focus-AI/granola-skill/pkg/logging"
	"github.com/The-Focus-AI/granola-skill/pkg/render"
)

// CommandDeps holds the dependencies shared by the meeting commands.
type CommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
	LoadCache  func(path string, opts ...granola.Option) (*granola.Cache, error)
	Logger     logging.Logger
	// Now overrides the clock used for recency filtering.
	Now func() time.Time
}

// DefaultDeps returns the default dependencies for production use.
func DefaultDeps() *CommandDeps {
	return &CommandDeps{
		LoadConfig: config.LoadConfig,
		LoadCache:  granola.Load,
	}
}

func (d *CommandDeps) config() (*config.CLIConfig, error) {
	if d.Config != nil {
		return d.Config, nil
	}
	if d.LoadConfig == nil {
		d.Config = config.DefaultConfig()
		return d.Config, nil
	}
	cfg, err := d.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	d.Config = cfg
	return cfg, nil
}

func (d *CommandDeps) logger() logging.Logger {
	if d.Logger == nil {
		return logging.NewNopLogger()
	}
	return d.Logger
}

// openCache loads the configured cache file. The snapshot lives for the
// duration of one command.
func (d *CommandDeps) openCache() (*granola.Cache, *config.CLIConfig, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, nil, err
	}

	path, err := config.ExpandPath(cfg.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving cache path: %w", err)
	}

	opts := []granola.Option{granola.WithLogger(d.logger())}
	if d.Now != nil {
		opts = append(opts, granola.WithClock(d.Now))
	}

	load := d.LoadCache
	if load == nil {
		load = granola.Load
	}
	cache, err := load(path, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("loading cache: %w", err)
	}
	return cache, cfg, nil
}

// resolveDocument loads the cache and resolves a full or partial meeting ID.
func (d *CommandDeps) resolveDocument(input string) (*granola.Cache, granola.Document, *config.CLIConfig, error) {
	cache, cfg, err := d.openCache()
	if err != nil {
		return nil, granola.Document{}, nil, err
	}
	doc, err := ResolveID(cache.Documents(), input)
	if err != nil {
		return nil, granola.Document{}, nil, err
	}
	d.logger().Debug("resolved meeting", logging.F("input", input), logging.F("id", doc.ID))
	return cache, doc, cfg, nil
}

// MeetingSummary is the machine-readable form of a listed meeting.
type MeetingSummary struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	CreatedAt    string   `json:"created_at" yaml:"created_at"`
	Participants []string `json:"participants" yaml:"participants"`
	Companies    []string `json:"companies,omitempty" yaml:"companies,omitempty"`
}

// MeetingDetail is the machine-readable form of a single meeting.
type MeetingDetail struct {
	granola.Document `yaml:",inline"`
	Participants     []string                    `json:"participants" yaml:"participants"`
	Transcript       []granola.TranscriptSegment `json:"transcript,omitempty" yaml:"transcript,omitempty"`
}

func summarize(docs []granola.Document) []MeetingSummary {
	out := make([]MeetingSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, MeetingSummary{
			ID:           d.ID,
			Title:        render.Title(d),
			CreatedAt:    d.CreatedAt,
			Participants: granola.AttendeeNames(d),
			Companies:    companies(d),
		})
	}
	return out
}

// companies returns the distinct attendee companies of d in attendee order.
func companies(d granola.Document) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range d.Attendees() {
		name := granola.CompanyName(a)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes v as YAML.
func outputYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// outputStructured writes v in a machine-readable format.
// It reports false for text output, which the caller renders itself.
func outputStructured(w io.Writer, format config.OutputFormat, v interface{}) (bool, error) {
	switch format {
	case config.OutputFormatJSON:
		return true, outputJSON(w, v)
	case config.OutputFormatYAML:
		return true, outputYAML(w, v)
	default:
		return false, nil
	}
}

// Column widths of the meeting table.
const (
	dateWidth         = 16
	shortIDLength     = 8
	defaultTitleWidth = 60
	minTitleWidth     = 20
)

// titleWidth sizes the title column to the terminal when w is one.
func titleWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTitleWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return defaultTitleWidth
	}
	width := cols - 2 - dateWidth - 2 - shortIDLength - 2
	if width < minTitleWidth {
		return minTitleWidth
	}
	return width
}

// writeMeetingRows prints one "date  id  title" row per meeting.
func writeMeetingRows(w io.Writer, docs []granola.Document) {
	gray := color.New(color.FgHiBlack).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	width := titleWidth(w)

	for _, d := range docs {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			gray(fmt.Sprintf("%-*s", dateWidth, render.ShortDate(d.CreatedAt))),
			cyan(shortID(d.ID)),
			truncate(render.Title(d), width),
		)
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return fmt.Sprintf("%-*s", shortIDLength, id)
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}

// requireArg returns the first positional argument or a usage error.
func requireArg(args []string, usage string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", usageError(usage)
	}
	return strings.TrimSpace(args[0]), nil
}
