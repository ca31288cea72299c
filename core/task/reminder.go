package task

import "time"

// ReminderWindow is the working-hours window during which the hours-logging
// reminder may fire. Start is inclusive, End exclusive.
type ReminderWindow struct {
	Start int // hour of day, 0..23
	End   int
}

func (w ReminderWindow) Contains(now time.Time) bool {
	h := now.Hour()
	return h >= w.Start && h < w.End
}

// NeedingHours derives the tasks the user should be reminded to log hours
// for: not yet completed, running today (open-ended start/end dates count as
// unbounded), and without a hours entry dated today in loggedToday. Outside
// the window the subset is always empty. loggedToday is pruned in place of
// entries not dated today, so stale days never survive an evaluation pass.
func NeedingHours(now time.Time, w ReminderWindow, tasks []Task, loggedToday map[int]string) []Task {
	today := DayKey(now)
	for id, day := range loggedToday {
		if day != today {
			delete(loggedToday, id)
		}
	}
	if !w.Contains(now) {
		return nil
	}

	var due []Task
	for _, t := range tasks {
		if t.Status != StatusNotStarted && t.Status != StatusInProgress {
			continue
		}
		if !runningOn(now, t) {
			continue
		}
		if loggedToday[t.ID] == today {
			continue
		}
		due = append(due, t)
	}
	return due
}

func runningOn(now time.Time, t Task) bool {
	day := now.Format("2006-01-02")
	if t.StartDate != nil && day < DayKey(*t.StartDate) {
		return false
	}
	if t.EndDate != nil && day > DayKey(*t.EndDate) {
		return false
	}
	return true
}
