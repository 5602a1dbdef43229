package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/The-Focus-AI/granola-skill/config"
	"github.com/The-Focus-AI/granola-skill/pkg/logging"
	"github.com/The-Focus-AI/granola-skill/pkg/render"
)

// NewExportCommand creates the export command.
func NewExportCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var outputDir string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a meeting to a markdown file",
		Long: `Export a meeting as markdown with YAML frontmatter.

The file is named <YYYY-MM-DD>-<title-slug>.md and holds the summary,
notes and transcript. The output directory is created if needed and an
existing file with the same name is overwritten.

Examples:
  granola export 1a2b3c4d
  granola export 1a2b3c4d --output ~/notes/meetings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireArg(args, "granola export <id> [--output DIR]")
			if err != nil {
				return err
			}
			return runExport(cmd, deps, id, outputDir)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "", "output directory (default from config: ./granola-exports)")

	return cmd
}

func runExport(cmd *cobra.Command, deps *CommandDeps, id, outputDir string) error {
	cache, doc, cfg, err := deps.resolveDocument(id)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = cfg.ExportDir
	}
	dir, err := config.ExpandPath(outputDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}

	content, err := render.FormatExport(doc, cache.Transcript(doc.ID))
	if err != nil {
		return fmt.Errorf("rendering meeting %s: %w", doc.ID, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, render.ExportFilename(doc))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	deps.logger().Debug("meeting exported", logging.F("id", doc.ID), logging.F("path", path), logging.F("bytes", len(content)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
