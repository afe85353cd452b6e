package finance

import "time"

// clampDay returns day limited to the last day of (year, month).
func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

// InstallmentEnd projects the final occurrence of an installment plan:
// (total - 1) months after the start month, on the due day, clamped to the
// end of shorter months.
func InstallmentEnd(start time.Time, dueDay, total int) time.Time {
	if total < 1 {
		total = 1
	}
	// first of the start month, then advance; avoids the AddDate day overflow
	// (Jan 31 + 1 month = Mar 3)
	base := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := base.AddDate(0, total-1, 0)
	day := clampDay(end.Year(), end.Month(), dueDay)
	return time.Date(end.Year(), end.Month(), day, 0, 0, 0, 0, time.UTC)
}

// OccursIn reports whether a monthly recurrence starting at start and
// optionally ending at end has an instance in (year, month).
func OccursIn(start time.Time, end *time.Time, year, month int) bool {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := clampDay(year, time.Month(month), 31)
	last := time.Date(year, time.Month(month), lastDay, 23, 59, 59, 0, time.UTC)

	if start.After(last) {
		return false
	}
	if end != nil && end.Before(first) {
		return false
	}
	return true
}

// InvoiceWindow returns the open credit-card invoice period at the given
// reference time: the day after the previous closing day through the next
// closing day, inclusive. Closing days past the end of a month clamp to its
// last day.
func InvoiceWindow(ref time.Time, closingDay int) (from, to time.Time) {
	year, month := ref.Year(), ref.Month()
	closeThis := time.Date(year, month, clampDay(year, month, closingDay), 0, 0, 0, 0, ref.Location())

	if ref.Day() > closeThis.Day() {
		// invoice closed this month; open window runs into next month
		next := closeThis.AddDate(0, 1, 0)
		to = time.Date(next.Year(), next.Month(), clampDay(next.Year(), next.Month(), closingDay), 0, 0, 0, 0, ref.Location())
		from = closeThis.AddDate(0, 0, 1)
		return from, to
	}

	prev := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -1, 0)
	prevClose := time.Date(prev.Year(), prev.Month(), clampDay(prev.Year(), prev.Month(), closingDay), 0, 0, 0, 0, ref.Location())
	return prevClose.AddDate(0, 0, 1), closeThis
}
