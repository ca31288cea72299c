package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dateP(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Topic: "Billing", SubTopic: "Invoices", Priority: 3, ExpectedHours: 8, Status: StatusNotStarted, EndDate: dateP(2024, 3, 10)},
		{ID: 2, Topic: "Billing", SubTopic: "Refunds", Priority: 1, ExpectedHours: 2, Status: StatusInProgress, EndDate: dateP(2024, 3, 5)},
		{ID: 3, Topic: "aardvark", Description: "new hire billing setup", Priority: 1, ExpectedHours: 5.5, Status: StatusCompleted},
		{ID: 4, Topic: "Reports", Priority: 2, ExpectedHours: 2, Status: StatusInProgress, EndDate: dateP(2024, 3, 5)},
	}
}

func TestQueryApply(t *testing.T) {
	inProgress := StatusInProgress

	tests := []struct {
		name    string
		query   Query
		wantIDs []int
	}{
		{"zero query is identity", Query{}, []int{1, 2, 3, 4}},
		{"search is case-insensitive over topic, subtopic, description", Query{Search: "BILLING"}, []int{1, 2, 3}},
		{"search whitespace is trimmed", Query{Search: "  refunds "}, []int{2}},
		{"status filter", Query{Status: &inProgress}, []int{2, 4}},
		{"search and status compose", Query{Search: "billing", Status: &inProgress}, []int{2}},
		{"sort by priority ascending", Query{SortField: SortPriority, Direction: SortAsc}, []int{2, 3, 4, 1}},
		{"sort by priority descending", Query{SortField: SortPriority, Direction: SortDesc}, []int{1, 4, 2, 3}},
		{"missing due date sorts last ascending", Query{SortField: SortDueDate, Direction: SortAsc}, []int{2, 4, 1, 3}},
		{"due date descending keeps ties stable", Query{SortField: SortDueDate, Direction: SortDesc}, []int{3, 1, 2, 4}},
		{"sort by topic is case-insensitive", Query{SortField: SortTopic, Direction: SortAsc}, []int{3, 1, 2, 4}},
		{"sort by topic descending", Query{SortField: SortTopic, Direction: SortDesc}, []int{4, 1, 2, 3}},
		{"sort by status ascending", Query{SortField: SortStatus, Direction: SortAsc}, []int{3, 2, 4, 1}},
		{"sort by expected hours keeps ties stable", Query{SortField: SortExpectedHours, Direction: SortAsc}, []int{2, 4, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleTasks()
			got := tt.query.Apply(in)

			ids := make([]int, len(got))
			for i, tsk := range got {
				ids[i] = tsk.ID
			}
			assert.Equal(t, tt.wantIDs, ids)

			// input untouched
			assert.Equal(t, sampleTasks(), in)

			// idempotence
			assert.Equal(t, got, tt.query.Apply(got))
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   Status
		wantOK bool
	}{
		{"Not Started", StatusNotStarted, true},
		{"in progress", StatusInProgress, true},
		{"COMPLETED", StatusCompleted, true},
		{"Pending", StatusNotStarted, true},
		{" pending ", StatusNotStarted, true},
		{"Blocked", Status("Blocked"), false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.wantOK, ok, tt.raw)
	}
}

func TestTotalHours(t *testing.T) {
	entries := []DailyHourEntry{
		{TaskID: 7, HoursSpent: 2.5},
		{TaskID: 7, HoursSpent: 4},
		{TaskID: 7, HoursSpent: 1.25},
	}
	assert.Equal(t, 7.75, TotalHours(entries))
	assert.Zero(t, TotalHours(nil))
}

func TestNewTaskValidate(t *testing.T) {
	valid := func() NewTask {
		return NewTask{
			EmployeeID:    4,
			Topic:         "Billing",
			Priority:      2,
			ExpectedHours: 8,
			StartDate:     "2024-03-01",
			EndDate:       "2024-03-05",
		}
	}

	t.Run("ok and defaults status", func(t *testing.T) {
		nt := valid()
		assert.NoError(t, nt.Validate())
		assert.Equal(t, string(StatusNotStarted), nt.Status)
	})
	t.Run("legacy status normalized", func(t *testing.T) {
		nt := valid()
		nt.Status = "Pending"
		assert.NoError(t, nt.Validate())
		assert.Equal(t, string(StatusNotStarted), nt.Status)
	})
	t.Run("unknown status rejected", func(t *testing.T) {
		nt := valid()
		nt.Status = "Blocked"
		assert.Error(t, nt.Validate())
	})
	t.Run("end before start rejected", func(t *testing.T) {
		nt := valid()
		nt.EndDate = "2024-02-28"
		assert.Error(t, nt.Validate())
	})
	t.Run("missing topic rejected", func(t *testing.T) {
		nt := valid()
		nt.Topic = "  "
		assert.Error(t, nt.Validate())
	})
	t.Run("priority out of range rejected", func(t *testing.T) {
		nt := valid()
		nt.Priority = 11
		assert.Error(t, nt.Validate())
	})
}
