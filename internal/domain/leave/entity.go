package leave

import "time"

// Category of a leave request. Only annual leave debits the balance.
type Category string

const (
	CategoryAnnual   Category = "annual"
	CategorySick     Category = "sick"
	CategoryOfficial Category = "official"
	CategoryOther    Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAnnual, CategorySick, CategoryOfficial, CategoryOther:
		return true
	}
	return false
}

// Duration maps to leave_duration_enum in DB
type Duration string

const (
	DurationFullDay    Duration = "full_day"
	DurationHalfDayAM  Duration = "half_day_am"
	DurationHalfDayPM  Duration = "half_day_pm"
	DurationQuarterDay Duration = "quarter_day"
)

func (d Duration) Valid() bool {
	switch d {
	case DurationFullDay, DurationHalfDayAM, DurationHalfDayPM, DurationQuarterDay:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the states that block new overlapping requests.
var ActiveStatuses = []Status{StatusPending, StatusApproved}

// LeaveRequest entity
type LeaveRequest struct {
	ID       string
	UserID   string
	Category Category
	Duration Duration

	StartDate time.Time
	EndDate   time.Time

	// Clock times in minutes from midnight, set only for quarter-day leave.
	StartTime *int
	EndTime   *int

	// RequestedDays is the face-value day count; EffectiveDays is what
	// actually debits the balance (annual leave only, never above requested).
	RequestedDays float64
	EffectiveDays *float64

	Reason *string

	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time

	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Consumed returns the amount this request debits the annual balance:
// effective days when recorded, requested days otherwise.
func (r LeaveRequest) Consumed() float64 {
	if r.EffectiveDays != nil {
		return *r.EffectiveDays
	}
	return r.RequestedDays
}
