package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/The-Focus-AI/granola-skill/pkg/granola"
	"github.com/The-Focus-AI/granola-skill/pkg/render"
)

// NewShowCommand creates the show command.
func NewShowCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var withTranscript bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a meeting's summary and notes",
		Long: `Show a meeting's details, AI summary and notes.

The identifier may be the full ID or any unique prefix of it, such as the
eight characters shown by 'granola list'.

Examples:
  granola show 1a2b3c4d
  granola show 1a2b3c4d --transcript
  granola show 1a2b3c4d --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireArg(args, "granola show <id> [--transcript]")
			if err != nil {
				return err
			}
			return runShow(cmd, deps, id, withTranscript)
		},
	}

	cmd.Flags().BoolVar(&withTranscript, "transcript", false, "include the full transcript")

	return cmd
}

func runShow(cmd *cobra.Command, deps *CommandDeps, id string, withTranscript bool) error {
	cache, doc, cfg, err := deps.resolveDocument(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var segments []granola.TranscriptSegment
	if withTranscript {
		segments = render.SortSegments(cache.Transcript(doc.ID))
	}

	detail := MeetingDetail{
		Document:     doc,
		Participants: granola.AttendeeNames(doc),
		Transcript:   segments,
	}
	if ok, err := outputStructured(out, cfg.OutputFormat, detail); ok {
		return err
	}

	var b strings.Builder
	b.WriteString(render.FormatDocument(doc, true))
	if withTranscript {
		b.WriteString("\n## Transcript\n\n")
		b.WriteString(render.FormatTranscript(segments))
		b.WriteString("\n")
	}
	fmt.Fprint(out, b.String())
	return nil
}
