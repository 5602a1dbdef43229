package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/The-Focus-AI/granola-skill/pkg/buildinfo"
	gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
	"github.com/The-Focus-AI/granola-skill/pkg/logging"
	"github.com/The-Focus-AI/granola-skill/pkg/render"
)

// NewMCPCommand creates the mcp command, which serves the meeting
// operations as Model Context Protocol tools over stdio.
func NewMCPCommand(deps *CommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve meetings to AI assistants over MCP (stdio)",
		Long: `Run a Model Context Protocol server on stdin/stdout.

The server exposes read-only tools:
  list_meetings    Recent meetings (days)
  show_meeting     Summary and notes of one meeting (id, transcript)
  search_meetings  Substring search (query, limit)
  get_transcript   Timestamped transcript (id)

The cache is re-read for every tool call, so the server sees meetings
Granola syncs while it is running.

Example MCP client configuration:
  {"command": "granola", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := deps.config(); err != nil {
				return err
			}
			deps.logger().Info("starting MCP server")
			return server.ServeStdio(NewMCPServer(deps))
		},
	}
}

// meetingTools implements the MCP tool handlers.
type meetingTools struct {
	deps *CommandDeps
}

// NewMCPServer builds the MCP server with the meeting tools registered.
func NewMCPServer(deps *CommandDeps) *server.MCPServer {
	t := &meetingTools{deps: deps}
	s := server.NewMCPServer("granola", buildinfo.Get("granola").Version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("list_meetings",
		mcp.WithDescription("List Granola meetings created in the last N days, most recent first."),
		mcp.WithNumber("days", mcp.Description("Number of days to look back. Defaults to the configured window (7).")),
	), t.listMeetings)

	s.AddTool(mcp.NewTool("show_meeting",
		mcp.WithDescription("Show a meeting's participants, AI summary and notes as markdown."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Full meeting ID or a unique prefix of it.")),
		mcp.WithBoolean("transcript", mcp.Description("Append the full transcript.")),
	), t.showMeeting)

	s.AddTool(mcp.NewTool("search_meetings",
		mcp.WithDescription("Find meetings whose title, notes or participant names contain the query (case-insensitive)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results. Defaults to the configured limit (20).")),
	), t.searchMeetings)

	s.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Get the timestamped transcript of a meeting."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Full meeting ID or a unique prefix of it.")),
	), t.getTranscript)

	return s
}

func (t *meetingTools) listMeetings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cache, cfg, err := t.deps.openCache()
	if err != nil {
		return toolError(err), nil
	}

	days := int(req.GetFloat("days", 0))
	if days <= 0 {
		days = cfg.RecentDays
	}
	docs := cache.Recent(days)

	return jsonResult(ListResponse{Days: days, Meetings: summarize(docs), TotalCount: len(docs)})
}

func (t *meetingTools) showMeeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return toolError(err), nil
	}
	cache, doc, _, err := t.deps.resolveDocument(strings.TrimSpace(id))
	if err != nil {
		return toolError(err), nil
	}

	text := render.FormatDocument(doc, true)
	if req.GetBool("transcript", false) {
		text += "\n## Transcript\n\n" + render.FormatTranscript(cache.Transcript(doc.ID)) + "\n"
	}
	return mcp.NewToolResultText(text), nil
}

func (t *meetingTools) searchMeetings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return toolError(err), nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}

	cache, cfg, err := t.deps.openCache()
	if err != nil {
		return toolError(err), nil
	}

	limit := int(req.GetFloat("limit", 0))
	if limit <= 0 {
		limit = cfg.SearchLimit
	}
	docs := cache.Search(query)
	total := len(docs)
	if len(docs) > limit {
		docs = docs[:limit]
	}
	t.deps.logger().Debug("mcp search", logging.F("query", query), logging.F("total", total))

	return jsonResult(SearchResponse{Query: query, Meetings: summarize(docs), TotalCount: total, Limit: limit})
}

func (t *meetingTools) getTranscript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return toolError(err), nil
	}
	cache, doc, _, err := t.deps.resolveDocument(strings.TrimSpace(id))
	if err != nil {
		return toolError(err), nil
	}

	text := fmt.Sprintf("# %s\n\n%s\n", render.Title(doc), render.FormatTranscript(cache.Transcript(doc.ID)))
	return mcp.NewToolResultText(text), nil
}

// toolError turns err into a tool error result. Known failures carry their
// code, description and suggested action.
func toolError(err error) *mcp.CallToolResult {
	code := gerrors.Classify(err)
	if code == gerrors.CodeUnknown {
		return mcp.NewToolResultError(err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v\n\n%s: %s", err, code, gerrors.GetDescription(code))
	if gerrors.IsTransient(code) {
		b.WriteString(" (transient, retry may succeed)")
	}
	if hint := gerrors.GetSuggestedAction(code); hint != "" {
		fmt.Fprintf(&b, "\n%s", hint)
	}
	return mcp.NewToolResultError(b.String())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
