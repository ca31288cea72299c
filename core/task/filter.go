package task

import (
	"sort"
	"strings"
	"time"

	"github.com/AkashQuad/trackqfrontend/core"
)

type SortField string

const (
	SortNone          SortField = ""
	SortPriority      SortField = "priority"
	SortDueDate       SortField = "dueDate"
	SortTopic         SortField = "topic"
	SortStatus        SortField = "status"
	SortExpectedHours SortField = "expectedHours"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// missing due dates order after every real date in ascending order
var maxSortDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Query filters and orders a task collection. The zero value is the identity
// query: Apply returns a copy with the original order intact.
type Query struct {
	Search    string
	Status    *Status
	SortField SortField
	Direction SortDirection
}

// Apply evaluates the query against tasks and returns a new slice; the input
// is never mutated. Filtering happens before sorting, and sorting is stable so
// ties keep their fetch order.
func (q Query) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	search := strings.ToLower(core.CleanString(q.Search))
	for _, t := range tasks {
		if q.Status != nil && t.Status != *q.Status {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}

	if q.SortField == SortNone {
		return out
	}
	desc := q.Direction == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch q.SortField {
		case SortPriority:
			if out[i].Priority == out[j].Priority {
				return false
			}
			less = out[i].Priority < out[j].Priority
		case SortDueDate:
			di, dj := dueDate(out[i]), dueDate(out[j])
			if di.Equal(dj) {
				return false
			}
			less = di.Before(dj)
		case SortTopic:
			ti, tj := strings.ToLower(out[i].Topic), strings.ToLower(out[j].Topic)
			if ti == tj {
				return false
			}
			less = ti < tj
		case SortStatus:
			si, sj := strings.ToLower(string(out[i].Status)), strings.ToLower(string(out[j].Status))
			if si == sj {
				return false
			}
			less = si < sj
		case SortExpectedHours:
			if out[i].ExpectedHours == out[j].ExpectedHours {
				return false
			}
			less = out[i].ExpectedHours < out[j].ExpectedHours
		default:
			return false
		}
		if desc {
			return !less
		}
		return less
	})
	return out
}

func matchesSearch(t Task, lowered string) bool {
	for _, field := range []string{t.Topic, t.SubTopic, t.Description} {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}

func dueDate(t Task) time.Time {
	if t.EndDate == nil {
		return maxSortDate
	}
	return *t.EndDate
}
