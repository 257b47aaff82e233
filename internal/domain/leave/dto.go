package leave

import (
	"time"

	"github.com/workmate-hq/attendance-backend-go/internal/pkg/validator"
)

// CreateLeaveRequestRequest is the submit payload. Dates are "2006-01-02",
// clock times are "15:04" and only meaningful for quarter-day leave.
type CreateLeaveRequestRequest struct {
	UserID    string `json:"-"`
	Category  string `json:"category"`
	Duration  string `json:"duration_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (r CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start date is required"})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}

	if !validator.IsEmpty(r.EndDate) {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if !Category(r.Category).Valid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of: annual, sick, official, other"})
	}
	if !Duration(r.Duration).Valid() {
		errs = append(errs, validator.ValidationError{Field: "duration_type", Message: "must be one of: full_day, half_day_am, half_day_pm, quarter_day"})
	}

	if !validator.IsEmpty(r.StartTime) {
		if _, ok := validator.ParseClockTime(r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:MM format"})
		}
	}
	if !validator.IsEmpty(r.EndTime) {
		if _, ok := validator.ParseClockTime(r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:MM format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

func (r RejectRequestRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "rejection reason is required"}}
	}
	return nil
}

// LeaveRequestResponse is the wire shape of a leave request.
type LeaveRequestResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Category      string   `json:"category"`
	Duration      string   `json:"duration_type"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	StartTime     *string  `json:"start_time,omitempty"`
	EndTime       *string  `json:"end_time,omitempty"`
	RequestedDays float64  `json:"requested_days"`
	EffectiveDays *float64 `json:"effective_days,omitempty"`
	Reason        *string  `json:"reason,omitempty"`
	Status        string   `json:"status"`
	ApprovedBy    *string  `json:"approved_by,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		Category:      string(r.Category),
		Duration:      string(r.Duration),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		RequestedDays: r.RequestedDays,
		EffectiveDays: r.EffectiveDays,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ApprovedBy:    r.ApprovedBy,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.StartTime != nil {
		s := validator.FormatClockTime(*r.StartTime)
		resp.StartTime = &s
	}
	if r.EndTime != nil {
		s := validator.FormatClockTime(*r.EndTime)
		resp.EndTime = &s
	}
	return resp
}

func ToResponses(requests []LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, ToResponse(r))
	}
	return responses
}
