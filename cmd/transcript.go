package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/The-Focus-AI/granola-skill/pkg/render"
)

// TranscriptResponse is the machine-readable output of 'granola transcript'.
type TranscriptResponse struct {
	ID       string           `json:"id" yaml:"id"`
	Title    string           `json:"title" yaml:"title"`
	Segments []TranscriptLine `json:"segments" yaml:"segments"`
}

// TranscriptLine is one utterance in a transcript response.
type TranscriptLine struct {
	Start   string `json:"start" yaml:"start"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Speaker string `json:"speaker,omitempty" yaml:"speaker,omitempty"`
	Text    string `json:"text" yaml:"text"`
}

// NewTranscriptCommand creates the transcript command.
func NewTranscriptCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	return &cobra.Command{
		Use:   "transcript <id>",
		Short: "Print a meeting's transcript",
		Long: `Print only the timestamped transcript of a meeting.

Examples:
  granola transcript 1a2b3c4d
  granola transcript 1a2b3c4d --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireArg(args, "granola transcript <id>")
			if err != nil {
				return err
			}
			return runTranscript(cmd, deps, id)
		},
	}
}

func runTranscript(cmd *cobra.Command, deps *CommandDeps, id string) error {
	cache, doc, cfg, err := deps.resolveDocument(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	segments := cache.Transcript(doc.ID)

	resp := TranscriptResponse{ID: doc.ID, Title: render.Title(doc), Segments: make([]TranscriptLine, 0, len(segments))}
	for _, s := range render.SortSegments(segments) {
		resp.Segments = append(resp.Segments, TranscriptLine{
			Start:   s.StartTimestamp,
			Source:  s.Source,
			Speaker: s.Speaker(),
			Text:    s.Text,
		})
	}
	if ok, err := outputStructured(out, cfg.OutputFormat, resp); ok {
		return err
	}

	fmt.Fprintln(out, render.FormatTranscript(segments))
	return nil
}
