package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeedingHours(t *testing.T) {
	window := ReminderWindow{Start: 9, End: 18}
	noon := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: 1, Status: StatusNotStarted, StartDate: dateP(2024, 3, 1), EndDate: dateP(2024, 3, 10)},
		{ID: 2, Status: StatusInProgress}, // open-ended dates are unbounded
		{ID: 3, Status: StatusCompleted},
		{ID: 4, Status: StatusInProgress, StartDate: dateP(2024, 3, 8)}, // not started yet
		{ID: 5, Status: StatusInProgress, EndDate: dateP(2024, 3, 5)},  // already over
	}

	t.Run("eligible tasks inside window", func(t *testing.T) {
		due := NeedingHours(noon, window, tasks, map[int]string{})
		ids := make([]int, len(due))
		for i, tsk := range due {
			ids[i] = tsk.ID
		}
		assert.Equal(t, []int{1, 2}, ids)
	})

	t.Run("task with hours logged today is excluded", func(t *testing.T) {
		logged := map[int]string{1: "2024-03-06"}
		due := NeedingHours(noon, window, tasks, logged)
		assert.Len(t, due, 1)
		assert.Equal(t, 2, due[0].ID)
	})

	t.Run("stale log entries are pruned and ignored", func(t *testing.T) {
		logged := map[int]string{1: "2024-03-05", 2: "2024-02-28"}
		due := NeedingHours(noon, window, tasks, logged)
		assert.Len(t, due, 2)
		assert.Empty(t, logged)
	})

	t.Run("outside window yields nothing but still prunes", func(t *testing.T) {
		logged := map[int]string{1: "2024-03-05"}
		evening := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
		assert.Empty(t, NeedingHours(evening, window, tasks, logged))
		assert.Empty(t, logged)

		early := time.Date(2024, 3, 6, 8, 59, 0, 0, time.UTC)
		assert.Empty(t, NeedingHours(early, window, tasks, nil))
	})
}

func TestReminderWindowContains(t *testing.T) {
	w := ReminderWindow{Start: 9, End: 18}
	assert.True(t, w.Contains(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 1, 1, 17, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 1, 8, 59, 0, 0, time.UTC)))
}
