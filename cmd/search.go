package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SearchResponse is the machine-readable output of 'granola search'.
type SearchResponse struct {
	Query      string           `json:"query" yaml:"query"`
	Meetings   []MeetingSummary `json:"meetings" yaml:"meetings"`
	TotalCount int              `json:"total_count" yaml:"total_count"`
	Limit      int              `json:"limit" yaml:"limit"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search meeting titles, notes and participants",
		Long: `Search meetings for a case-insensitive substring.

All arguments are joined with spaces to form the query. The query is
matched against meeting titles, plain-text notes and participant names.
Results are listed in cache order.

Examples:
  granola search roadmap
  granola search quarterly planning
  granola search alice --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return usageError("granola search <query>")
			}
			return runSearch(cmd, deps, query, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results to show (default from config)")

	return cmd
}

func runSearch(cmd *cobra.Command, deps *CommandDeps, query string, limit int) error {
	cache, cfg, err := deps.openCache()
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.SearchLimit
	}

	docs := cache.Search(query)
	total := len(docs)
	if len(docs) > limit {
		docs = docs[:limit]
	}
	out := cmd.OutOrStdout()

	resp := SearchResponse{Query: query, Meetings: summarize(docs), TotalCount: total, Limit: limit}
	if ok, err := outputStructured(out, cfg.OutputFormat, resp); ok {
		return err
	}

	if total == 0 {
		fmt.Fprintf(out, "No meetings found matching %q.\n", query)
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s\n\n", bold(fmt.Sprintf("Found %d meetings matching %q:", total, query)))
	writeMeetingRows(out, docs)
	if rest := total - len(docs); rest > 0 {
		fmt.Fprintf(out, "  ... and %d more\n", rest)
	}
	return nil
}
