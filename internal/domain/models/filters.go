package models

import "time"

type DateFilterSet struct {
	PostedFrom   *time.Time
	PostedTo     *time.Time
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}

func (f DateFilterSet) IsEmpty() bool {
	return f.PostedFrom == nil && f.PostedTo == nil && f.DeadlineFrom == nil && f.DeadlineTo == nil
}

func (f DateFilterSet) ValidPostedRange() bool {
	return ValidDateRange(f.PostedFrom, f.PostedTo)
}

func (f DateFilterSet) ValidDeadlineRange() bool {
	return ValidDateRange(f.DeadlineFrom, f.DeadlineTo)
}

// ValidDateRange rejects a range only when both bounds are set and from is after to.
func ValidDateRange(from, to *time.Time) bool {
	if from != nil && to != nil && from.After(*to) {
		return false
	}
	return true
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
