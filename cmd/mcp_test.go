package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
	"github.com/The-Focus-AI/granola-skill/pkg/granola"
)

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestMCP_ListMeetings(t *testing.T) {
	doc := weeklySync()
	tools := &meetingTools{deps: createTestDeps(writeCache(t, []granola.Document{doc}, nil))}

	res, err := tools.listMeetings(context.Background(), toolRequest("list_meetings", map[string]any{"days": float64(7)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var resp ListResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, 7, resp.Days)
	require.Len(t, resp.Meetings, 1)
	assert.Equal(t, doc.ID, resp.Meetings[0].ID)

	res, err = tools.listMeetings(context.Background(), toolRequest("list_meetings", map[string]any{"days": float64(1)}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, 0, resp.TotalCount)
}

func TestMCP_ShowMeeting(t *testing.T) {
	deps, doc := showFixture(t)
	tools := &meetingTools{deps: deps}

	res, err := tools.showMeeting(context.Background(), toolRequest("show_meeting", map[string]any{"id": "abc1", "transcript": true}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, "**ID:** "+doc.ID)
	assert.Contains(t, text, "## Transcript")
	assert.Contains(t, text, "Shall we launch?")
}

func TestMCP_ShowMeetingErrors(t *testing.T) {
	deps, _ := showFixture(t)
	tools := &meetingTools{deps: deps}

	tests := []struct {
		name string
		args map[string]any
		msg  string
	}{
		{"missing id", map[string]any{}, "id"},
		{"ambiguous", map[string]any{"id": "abc"}, "Retro"},
		{"not found", map[string]any{"id": "nope"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tools.showMeeting(context.Background(), toolRequest("show_meeting", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.msg)
		})
	}
}

func TestMCP_SearchMeetings(t *testing.T) {
	tools := &meetingTools{deps: searchFixture(t)}

	res, err := tools.searchMeetings(context.Background(), toolRequest("search_meetings", map[string]any{"query": "plan", "limit": float64(2)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.Limit)
	assert.Len(t, resp.Meetings, 2)

	res, err = tools.searchMeetings(context.Background(), toolRequest("search_meetings", map[string]any{"query": " "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCP_GetTranscript(t *testing.T) {
	deps, _ := showFixture(t)
	tools := &meetingTools{deps: deps}

	res, err := tools.getTranscript(context.Background(), toolRequest("get_transcript", map[string]any{"id": "abc12"}))
	require.NoError(t, err)

	text := resultText(t, res)
	assert.Contains(t, text, "# Weekly Sync\n")
	assert.Less(t, indexOf(text, "Shall we launch?"), indexOf(text, "Sounds good."))
}

func TestMCP_MissingCache(t *testing.T) {
	tools := &meetingTools{deps: createTestDeps(t.TempDir() + "/missing.json")}

	res, err := tools.listMeetings(context.Background(), toolRequest("list_meetings", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "cache file not found")
	assert.Contains(t, resultText(t, res), "source_not_found: Granola cache file does not exist")
}

func TestToolError(t *testing.T) {
	res := toolError(fmt.Errorf("%w: bad json", gerrors.ErrMalformedSource))
	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "malformed_source: Granola cache file could not be decoded (transient, retry may succeed)")
	assert.Contains(t, text, "run the command again")

	res = toolError(fmt.Errorf("meeting %q: %w", "zz", gerrors.ErrNotFound))
	text = resultText(t, res)
	assert.Contains(t, text, "not_found: No meeting has the given ID\n")
	assert.NotContains(t, text, "transient")

	res = toolError(errors.New("disk full"))
	assert.Equal(t, "disk full", resultText(t, res))
}

func TestNewMCPServer(t *testing.T) {
	assert.NotNil(t, NewMCPServer(createTestDeps("")))
}
