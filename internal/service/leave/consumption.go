package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/leave"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/holiday"
)

// HolidayDirectory resolves a country's public holidays for a year. The
// production implementation is holiday.Client; it never fails, it degrades.
type HolidayDirectory interface {
	Fetch(ctx context.Context, countryCode string, year int) []holiday.Holiday
}

// Consumption is the outcome of turning a requested span into effective
// days. A zero-consumption span is not an error: HasWarning flags it so the
// caller can ask the user to confirm.
type Consumption struct {
	RequestedDays  float64
	EffectiveDays  float64
	WorkingDays    int
	HasWarning     bool
	WarningMessage string
}

type ConsumptionCalculator struct {
	directory HolidayDirectory
}

func NewConsumptionCalculator(directory HolidayDirectory) *ConsumptionCalculator {
	return &ConsumptionCalculator{directory: directory}
}

// Calculate converts a requested leave span into the day count that debits
// the balance, excluding weekends and (when a country code is configured)
// public holidays.
func (c *ConsumptionCalculator) Calculate(
	ctx context.Context,
	duration leave.Duration,
	startDate, endDate time.Time,
	requestedDays float64,
	countryCode string,
) Consumption {
	holidays := c.resolveHolidays(ctx, startDate, endDate, countryCode)

	result := Consumption{RequestedDays: requestedDays}

	if duration == leave.DurationFullDay {
		workingDays := holiday.CountWorkingDays(startDate, endDate, holidays)
		result.WorkingDays = workingDays
		result.EffectiveDays = float64(workingDays)
		if workingDays == 0 {
			result.HasWarning = true
			result.WarningMessage = fmt.Sprintf(
				"the entire span %s to %s falls on weekends or public holidays; no leave will be consumed",
				startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
		}
		return result
	}

	// Half and quarter days occupy a single calendar day.
	if holiday.CountWorkingDays(startDate, startDate, holidays) == 0 {
		result.HasWarning = true
		result.WarningMessage = fmt.Sprintf(
			"%s falls on a weekend or public holiday; no leave will be consumed",
			startDate.Format("2006-01-02"))
		return result
	}

	result.WorkingDays = 1
	result.EffectiveDays = requestedDays
	return result
}

// resolveHolidays fetches the holiday list for the span's year, or the union
// of both years when the span crosses a year boundary. An empty country code
// skips fetching entirely, leaving weekend-only exclusion.
func (c *ConsumptionCalculator) resolveHolidays(ctx context.Context, startDate, endDate time.Time, countryCode string) []holiday.Holiday {
	if countryCode == "" {
		return nil
	}

	first := c.directory.Fetch(ctx, countryCode, startDate.Year())
	if endDate.Year() == startDate.Year() {
		return first
	}

	second := c.directory.Fetch(ctx, countryCode, endDate.Year())
	combined := make([]holiday.Holiday, 0, len(first)+len(second))
	combined = append(combined, first...)
	combined = append(combined, second...)
	return combined
}
