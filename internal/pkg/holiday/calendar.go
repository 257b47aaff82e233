package holiday

import "time"

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday matches on the ISO calendar date only, ignoring time-of-day.
func IsHoliday(date time.Time, holidays []Holiday) bool {
	day := date.Format("2006-01-02")
	for _, h := range holidays {
		if h.Date == day {
			return true
		}
	}
	return false
}

func IsWorkingDay(date time.Time, holidays []Holiday) bool {
	return !IsWeekend(date) && !IsHoliday(date, holidays)
}

// CountWorkingDays counts working days from start to end, inclusive of both
// endpoints, iterating day by day.
func CountWorkingDays(start, end time.Time, holidays []Holiday) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d, holidays) {
			count++
		}
	}
	return count
}
