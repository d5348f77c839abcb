package service

import "time"

// DefaultDailyFineRate is the fallback fine per overdue day, in currency
// units, used when the configuration does not override it.
const DefaultDailyFineRate = 10

// LateFine computes the fee for a loan returned at returnedAt against its
// dueDate. Partial days round up; returning on or before the due date costs
// nothing. Pure function, no clock access, so it is trivially testable.
func LateFine(dueDate, returnedAt time.Time, dailyRate int64) int64 {
	if !returnedAt.After(dueDate) {
		return 0
	}
	overdue := returnedAt.Sub(dueDate)
	days := int64(overdue / (24 * time.Hour))
	if overdue%(24*time.Hour) != 0 {
		days++
	}
	return days * dailyRate
}
