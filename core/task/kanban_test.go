package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKanbanBoard(t *testing.T) {
	tasks := []Task{
		{ID: 1, Priority: 5, Status: StatusNotStarted},
		{ID: 2, Priority: 1, Status: StatusInProgress},
		{ID: 3, Priority: 2, Status: StatusNotStarted},
		{ID: 4, Priority: 1, Status: "Pending"}, // legacy spelling
		{ID: 5, Priority: 9, Status: "Blocked"}, // outside the domain
		{ID: 6, Priority: 3, Status: StatusCompleted},
	}
	board := NewKanbanBoard(tasks)

	ids := func(col []Task) []int {
		out := make([]int, len(col))
		for i, tsk := range col {
			out[i] = tsk.ID
		}
		return out
	}

	// columns ordered by ascending priority, legacy Pending folded in
	assert.Equal(t, []int{4, 3, 1}, ids(board.Column(StatusNotStarted)))
	assert.Equal(t, []int{2}, ids(board.Column(StatusInProgress)))
	assert.Equal(t, []int{6}, ids(board.Column(StatusCompleted)))
	assert.Equal(t, []int{5}, ids(board.Unrecognized))

	// strict partition: every task lands in exactly one bucket
	assert.Equal(t, len(tasks), board.Size())
}

func TestNewKanbanBoardEmpty(t *testing.T) {
	board := NewKanbanBoard(nil)
	for _, st := range Statuses {
		assert.Empty(t, board.Column(st))
		assert.NotNil(t, board.Column(st))
	}
	assert.Empty(t, board.Unrecognized)
	assert.Zero(t, board.Size())
}
