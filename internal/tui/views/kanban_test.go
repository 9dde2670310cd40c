package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/tui"
)

func TestBucketsPartitionsByStatus(t *testing.T) {
	items := []api.KanbanItem{
		{ID: "a", Status: api.KanbanTodo},
		{ID: "b", Status: api.KanbanInProgress},
		{ID: "c", Status: api.KanbanDone},
		{ID: "d", Status: api.KanbanInProgress},
		{ID: "e", Status: "mystery"},
	}

	board := Buckets(items)

	assert.Len(t, board.Todo, 2, "unknown status falls into todo")
	assert.Len(t, board.InProgress, 2)
	assert.Len(t, board.Done, 1)
}

func TestSampleItemsPartition(t *testing.T) {
	board := Buckets(SampleItems())

	assert.Len(t, board.Todo, 1)
	assert.Len(t, board.InProgress, 2)
	assert.Len(t, board.Done, 1)
}

func TestEmptyBackendFallsBackToSample(t *testing.T) {
	m := NewKanbanModel(tui.Deps{}, 80, 24)

	m, _ = m.Update(tui.KanbanLoadedMsg{Items: nil})

	require.True(t, m.sample)
	board := m.board
	assert.Len(t, board.Todo, 1)
	assert.Len(t, board.InProgress, 2)
	assert.Len(t, board.Done, 1)
}

func TestNonEmptyBackendNeverTriggersSample(t *testing.T) {
	m := NewKanbanModel(tui.Deps{}, 80, 24)

	m, _ = m.Update(tui.KanbanLoadedMsg{Items: []api.KanbanItem{
		{ID: "only", Status: api.KanbanDone},
	}})

	require.False(t, m.sample)
	assert.Empty(t, m.board.Todo)
	assert.Empty(t, m.board.InProgress)
	require.Len(t, m.board.Done, 1)
	assert.Equal(t, "only", m.board.Done[0].ID)
}

func TestLoadErrorKeepsBoardAndShowsMessage(t *testing.T) {
	m := NewKanbanModel(tui.Deps{}, 80, 24)
	m, _ = m.Update(tui.KanbanLoadedMsg{Items: []api.KanbanItem{{ID: "x", Status: api.KanbanTodo}}})

	m, _ = m.Update(tui.KanbanLoadedMsg{Err: assert.AnError})

	assert.Equal(t, assert.AnError.Error(), m.errMsg)
	assert.Len(t, m.board.Todo, 1, "previous board survives a failed refresh")
}
