package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/The-Focus-AI/granola-skill/pkg/logging"
)

// ListResponse is the machine-readable output of 'granola list'.
type ListResponse struct {
	Days       int              `json:"days" yaml:"days"`
	Meetings   []MeetingSummary `json:"meetings" yaml:"meetings"`
	TotalCount int              `json:"total_count" yaml:"total_count"`
}

// NewListCommand creates the list command.
func NewListCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	var days string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent meetings",
		Long: `List meetings created in the last N days, most recent first.

The window defaults to recent_days from the configuration (7 unless changed).
A value that is not a positive whole number falls back to that default.

Examples:
  granola list
  granola list --days 30
  granola list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, deps, days)
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "number of days to look back (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, deps *CommandDeps, daysFlag string) error {
	cache, cfg, err := deps.openCache()
	if err != nil {
		return err
	}

	days := parseDays(daysFlag, cfg.RecentDays)
	if daysFlag != "" && strconv.Itoa(days) != strings.TrimSpace(daysFlag) {
		deps.logger().Debug("invalid --days value, using default",
			logging.F("value", daysFlag), logging.F("days", days))
	}

	docs := cache.Recent(days)
	out := cmd.OutOrStdout()

	resp := ListResponse{Days: days, Meetings: summarize(docs), TotalCount: len(docs)}
	if ok, err := outputStructured(out, cfg.OutputFormat, resp); ok {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(out, "No meetings found in the last %d days.\n", days)
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s\n\n", bold(fmt.Sprintf("Meetings from the last %d days (%d):", days, len(docs))))
	writeMeetingRows(out, docs)
	return nil
}

// parseDays returns value as a positive day count, or def when value is
// empty, not a number, or not positive.
func parseDays(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
