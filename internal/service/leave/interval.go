package leave

import (
	"time"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/leave"
)

// Nominal workday window and the fixed half/quarter-day blocks, in minutes
// from midnight. Tunable here without touching interval construction.
const (
	workdayStartMinute = 9 * 60  // 09:00
	workdayEndMinute   = 18 * 60 // 18:00

	halfDayAMStartMinute = 9 * 60  // 09:00
	halfDayAMEndMinute   = 13 * 60 // 13:00
	halfDayPMStartMinute = 14 * 60 // 14:00
	halfDayPMEndMinute   = 18 * 60 // 18:00

	// QuarterDayMinutes is the exact length a quarter-day leave must span.
	QuarterDayMinutes = 120
)

// Interval is a half-open [Start, End) span in minutes since the Unix epoch,
// so intervals on different days stay numerically ordered and comparable.
type Interval struct {
	Start int64
	End   int64
}

// Overlaps reports strict half-open overlap. Intervals that merely touch at
// a boundary do not overlap, which is what permits back-to-back half days.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Intervals converts a leave request into its occupied time intervals. A
// quarter-day request without both clock times yields no intervals: callers
// must treat that as "no overlap data", not as a zero-length request.
func Intervals(duration leave.Duration, startDate, endDate time.Time, startTime, endTime *int) []Interval {
	switch duration {
	case leave.DurationFullDay:
		var intervals []Interval
		for d := dateOnly(startDate); !d.After(dateOnly(endDate)); d = d.AddDate(0, 0, 1) {
			anchor := minutesAtMidnight(d)
			intervals = append(intervals, Interval{
				Start: anchor + workdayStartMinute,
				End:   anchor + workdayEndMinute,
			})
		}
		return intervals
	case leave.DurationHalfDayAM:
		anchor := minutesAtMidnight(startDate)
		return []Interval{{Start: anchor + halfDayAMStartMinute, End: anchor + halfDayAMEndMinute}}
	case leave.DurationHalfDayPM:
		anchor := minutesAtMidnight(startDate)
		return []Interval{{Start: anchor + halfDayPMStartMinute, End: anchor + halfDayPMEndMinute}}
	case leave.DurationQuarterDay:
		if startTime == nil || endTime == nil {
			return nil
		}
		anchor := minutesAtMidnight(startDate)
		return []Interval{{Start: anchor + int64(*startTime), End: anchor + int64(*endTime)}}
	}
	return nil
}

// NominalDays returns the face-value day count of a request, before any
// working-day exclusion.
func NominalDays(duration leave.Duration, startDate, endDate time.Time) float64 {
	switch duration {
	case leave.DurationFullDay:
		return float64(inclusiveDays(startDate, endDate))
	case leave.DurationHalfDayAM, leave.DurationHalfDayPM:
		return 0.5
	case leave.DurationQuarterDay:
		return 0.25
	}
	return 0
}

func inclusiveDays(startDate, endDate time.Time) int {
	start := dateOnly(startDate)
	end := dateOnly(endDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func minutesAtMidnight(date time.Time) int64 {
	return dateOnly(date).Unix() / 60
}
