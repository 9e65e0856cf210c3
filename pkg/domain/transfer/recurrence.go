package transfer

import "time"

// RecurrenceType is the closed set of repeat rules for a scheduled transfer
// definition.
type RecurrenceType string

const (
	RecurrenceOneTime   RecurrenceType = "OneTime"
	RecurrenceDaily     RecurrenceType = "Daily"
	RecurrenceWeekly    RecurrenceType = "Weekly"
	RecurrenceMonthly   RecurrenceType = "Monthly"
	RecurrenceQuarterly RecurrenceType = "Quarterly"
	RecurrenceAnnually  RecurrenceType = "Annually"
)

// NextExecution computes the next execution instant for a recurrence rule.
//
// All repeating branches compute relative to now, not relative to the
// definition's own scheduled date; each materialization recomputes forward
// from the same rule.
//
// Weekly ignores recurrenceDay and always targets the next Monday. That
// mirrors the established behavior of this engine; honoring the day-of-week
// here would silently shift existing definitions.
func NextExecution(now, scheduledDate time.Time, recurrence RecurrenceType, recurrenceDay *int) time.Time {
	now = now.UTC()
	switch recurrence {
	case RecurrenceOneTime:
		return scheduledDate
	case RecurrenceDaily:
		return now.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return nextWeekday(now, time.Monday)
	case RecurrenceMonthly:
		if recurrenceDay != nil {
			return nextMonthlyOnDay(now, *recurrenceDay)
		}
		return addMonths(now, 1)
	case RecurrenceQuarterly:
		return addMonths(now, 3)
	case RecurrenceAnnually:
		return addMonths(now, 12)
	default:
		return scheduledDate
	}
}

// nextWeekday returns the next strictly-future occurrence of the given
// weekday.
func nextWeekday(now time.Time, day time.Weekday) time.Time {
	days := (int(day) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}

// nextMonthlyOnDay returns the given day-of-month in the current month when
// that is still in the future, otherwise the same day next month. The day is
// clamped to the actual length of the target month, so day 31 in a 30-day
// month yields day 30, not a rollover into the next month.
func nextMonthlyOnDay(now time.Time, day int) time.Time {
	candidate := onDayOfMonth(now, day)
	if candidate.After(now) {
		return candidate
	}
	// Anchor at the first of next month but keep now's clock, so rolling
	// over a month does not silently move the execution to midnight.
	firstOfNext := time.Date(now.Year(), now.Month(), 1,
		now.Hour(), now.Minute(), now.Second(), 0, time.UTC).AddDate(0, 1, 0)
	return onDayOfMonth(firstOfNext, day)
}

func onDayOfMonth(anchor time.Time, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if max := daysInMonth(anchor.Year(), anchor.Month()); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), 0, time.UTC)
}

// addMonths advances by whole calendar months, clamping the day to the
// target month's length instead of letting Jan 31 normalize into March.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if max := daysInMonth(first.Year(), first.Month()); d > max {
		d = max
	}
	return time.Date(first.Year(), first.Month(), d,
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
