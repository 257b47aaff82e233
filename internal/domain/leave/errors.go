package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrStartDateRequired      = errors.New("start date is required")
	ErrInvalidDateRange       = errors.New("end date is before start date")
	ErrInvalidCategory        = errors.New("invalid leave category")
	ErrInvalidDuration        = errors.New("invalid leave duration type")
	ErrInvalidQuarterDuration = errors.New("quarter-day leave must span exactly two hours")
	ErrInsufficientBalance    = errors.New("insufficient leave balance")
	ErrOverlappingLeave       = errors.New("overlapping leave request")
	ErrNotRequestOwner        = errors.New("leave request belongs to another user")
	ErrLeaveAlreadyProcessed  = errors.New("leave request already processed")
)

// InsufficientBalanceError carries the remaining balance for message formatting.
type InsufficientBalanceError struct {
	Remaining float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: %.2f days remaining, %.2f requested", e.Remaining, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// OverlapError names the conflicting request's status and date range.
type OverlapError struct {
	Status    Status
	StartDate time.Time
	EndDate   time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlaps a %s leave request from %s to %s",
		e.Status, e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"))
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingLeave }
