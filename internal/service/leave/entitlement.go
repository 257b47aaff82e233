package leave

import "time"

// Statutory annual-leave accrual: one day per completed month during the
// first year (the twelfth month is superseded by the year-one jump), a
// 15-day base after one full year, then one extra day per two additional
// full years up to 25.
const (
	firstYearMonthlyCap = 11
	baseAnnualLeave     = 15
	maxAnnualLeave      = 25
)

// CalculateEntitlement returns the total annual-leave entitlement for an
// employee hired on joinDate, as of asOf. A nil join date means no
// entitlement yet. Pure function, no I/O.
func CalculateEntitlement(joinDate *time.Time, asOf time.Time) float64 {
	if joinDate == nil {
		return 0
	}

	months := wholeMonthsBetween(*joinDate, asOf)
	if months < 1 {
		return 0
	}

	years := months / 12
	if years >= 1 {
		entitlement := baseAnnualLeave + (years-1)/2
		if entitlement > maxAnnualLeave {
			entitlement = maxAnnualLeave
		}
		return float64(entitlement)
	}

	if months > firstYearMonthlyCap {
		months = firstYearMonthlyCap
	}
	return float64(months)
}

// wholeMonthsBetween counts completed calendar months from from to to, with
// civil-calendar semantics: the month only completes once the day of month
// is reached, so Jan 31 to Apr 30 is exactly 2 months.
func wholeMonthsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	months := int(to.Month()) - int(from.Month())
	total := years*12 + months

	if to.Day() < from.Day() {
		total--
	}
	if total < 0 {
		total = 0
	}
	return total
}
