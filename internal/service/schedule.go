package service

import (
	"time"

	"github.com/Dan9191/budget-hub/internal/models"
)

// civilDate returns midnight UTC of the calendar day t falls on in loc
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueDate returns the occurrence of t that should be generated on today, and
// false when nothing is due yet. The first occurrence is the start date for a
// template that never generated, otherwise the last generated date plus one
// period. When several periods elapsed since then, the latest occurrence not
// after today is returned so a single run catches up with one transaction.
func DueDate(t models.RecurringTemplate, today time.Time) (time.Time, bool) {
	step := t.FrequencyDays
	if step < 1 {
		return time.Time{}, false
	}

	var due time.Time
	if t.LastGeneratedDate == nil {
		due = t.StartDate
	} else {
		due = t.LastGeneratedDate.AddDate(0, 0, step)
	}
	if due.After(today) {
		return time.Time{}, false
	}
	elapsed := int(civilDate(today, today.Location()).Sub(civilDate(due, due.Location())).Hours() / 24)
	return due.AddDate(0, 0, elapsed/step*step), true
}

// previousPeriod returns the calendar month before month/year
func previousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
