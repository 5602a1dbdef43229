package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Focus-AI/granola-skill/config"
	gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
	"github.com/The-Focus-AI/granola-skill/pkg/granola"
)

func searchFixture(t *testing.T) *CommandDeps {
	t.Helper()
	docs := []granola.Document{
		{ID: fullID("a1"), Title: "Quarterly Planning", CreatedAt: daysAgo(1)},
		{ID: fullID("b2"), Title: "Standup", NotesPlain: "Discussed quarterly planning goals", CreatedAt: daysAgo(2)},
		{ID: fullID("c3"), Title: "1:1", CreatedAt: daysAgo(3),
			People: &granola.People{Attendees: []granola.Person{attendee("Alice Planner")}}},
		{ID: fullID("d4"), Title: "Lunch", CreatedAt: daysAgo(4)},
	}
	return createTestDeps(writeCache(t, docs, nil))
}

func TestSearch_JoinsQueryWords(t *testing.T) {
	out, err := execute(NewSearchCommand(searchFixture(t)), "QUARTERLY", "planning")
	require.NoError(t, err)

	assert.Contains(t, out, `Found 2 meetings matching "QUARTERLY planning":`)
	assert.Contains(t, out, "Quarterly Planning")
	assert.Contains(t, out, "Standup")
	assert.NotContains(t, out, "Lunch")
}

func TestSearch_MatchesAttendees(t *testing.T) {
	out, err := execute(NewSearchCommand(searchFixture(t)), "alice")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 1 meetings")
	assert.Contains(t, out, "1:1")
}

func TestSearch_NoMatches(t *testing.T) {
	out, err := execute(NewSearchCommand(searchFixture(t)), "zebra")
	require.NoError(t, err)

	assert.Equal(t, "No meetings found matching \"zebra\".\n", out)
}

func TestSearch_Limit(t *testing.T) {
	out, err := execute(NewSearchCommand(searchFixture(t)), "plan", "--limit", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 3 meetings")
	assert.Contains(t, out, "  ... and 2 more\n")
	assert.Equal(t, 1, strings.Count(out, fullID("a1")[:8])+strings.Count(out, fullID("b2")[:8])+strings.Count(out, fullID("c3")[:8]))
}

func TestSearch_LimitFromConfig(t *testing.T) {
	docs := make([]granola.Document, 0, 25)
	for i := 0; i < 25; i++ {
		docs = append(docs, granola.Document{ID: fullID(fmt.Sprintf("%02d", i)), Title: "Sync"})
	}
	deps := createTestDeps(writeCache(t, docs, nil))
	deps.Config.OutputFormat = config.OutputFormatJSON

	out, err := execute(NewSearchCommand(deps), "sync")
	require.NoError(t, err)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "sync", resp.Query)
	assert.Equal(t, 25, resp.TotalCount)
	assert.Equal(t, config.DefaultSearchLimit, resp.Limit)
	assert.Len(t, resp.Meetings, config.DefaultSearchLimit)
}

func TestSearch_MissingQuery(t *testing.T) {
	for _, args := range [][]string{nil, {"  "}} {
		_, err := execute(NewSearchCommand(searchFixture(t)), args...)
		require.Error(t, err)
		assert.True(t, gerrors.IsUsage(err))
		assert.Contains(t, err.Error(), "granola search <query>")
	}
}
