package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/company"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/leave"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/validator"
)

// SubmitResult carries either the persisted request or, when consumption
// flagged a warning, the warning payload. A warning is a soft stop: nothing
// is persisted and the caller must re-confirm upstream.
type SubmitResult struct {
	Request *leave.LeaveRequest
	Warning *Consumption
}

// Transactor runs fn atomically: repository writes made inside fn commit or
// roll back together. The production implementation is
// postgresql.NewTransactor.
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

type RequestService struct {
	leaveRepo   leave.LeaveRequestRepository
	userRepo    user.UserRepository
	companyRepo company.CompanyRepository
	consumption *ConsumptionCalculator
	tx          Transactor
	logger      *slog.Logger

	now func() time.Time
}

func NewRequestService(
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	consumption *ConsumptionCalculator,
	tx Transactor,
	logger *slog.Logger,
) *RequestService {
	return &RequestService{
		leaveRepo:   leaveRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		consumption: consumption,
		tx:          tx,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit validates a new leave request end to end and persists it as
// pending, or rejects it with a precise reason. Annual leave additionally
// goes through balance and overlap checks; other categories only need valid
// dates.
func (s *RequestService) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (SubmitResult, error) {
	if validator.IsEmpty(req.StartDate) {
		return SubmitResult{}, leave.ErrStartDateRequired
	}
	startDate, ok := validator.IsValidDate(req.StartDate)
	if !ok {
		return SubmitResult{}, leave.ErrStartDateRequired
	}

	category := leave.Category(req.Category)
	if !category.Valid() {
		return SubmitResult{}, leave.ErrInvalidCategory
	}
	duration := leave.Duration(req.Duration)
	if !duration.Valid() {
		return SubmitResult{}, leave.ErrInvalidDuration
	}

	// Only full-day leave spans multiple days; everything else collapses to
	// the start date.
	endDate := startDate
	if duration == leave.DurationFullDay && !validator.IsEmpty(req.EndDate) {
		if endDate, ok = validator.IsValidDate(req.EndDate); !ok {
			return SubmitResult{}, leave.ErrInvalidDateRange
		}
	}
	if endDate.Before(startDate) {
		return SubmitResult{}, leave.ErrInvalidDateRange
	}

	startTime, endTime, err := parseQuarterTimes(duration, req.StartTime, req.EndTime)
	if err != nil {
		return SubmitResult{}, err
	}

	requestedDays := NominalDays(duration, startDate, endDate)

	request := leave.LeaveRequest{
		UserID:        req.UserID,
		Category:      category,
		Duration:      duration,
		StartDate:     startDate,
		EndDate:       endDate,
		StartTime:     startTime,
		EndTime:       endTime,
		RequestedDays: requestedDays,
		Status:        leave.StatusPending,
	}
	if !validator.IsEmpty(req.Reason) {
		request.Reason = &req.Reason
	}

	if category == leave.CategoryAnnual {
		result, err := s.prepareAnnual(ctx, &request)
		if err != nil || result.Warning != nil {
			return result, err
		}
	}

	created, err := s.leaveRepo.Create(ctx, request)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("create leave request: %w", err)
	}

	s.logger.Info("leave request submitted",
		"request_id", created.ID,
		"user_id", created.UserID,
		"category", created.Category,
		"requested_days", created.RequestedDays)

	return SubmitResult{Request: &created}, nil
}

// prepareAnnual runs the balance and overlap checks for annual leave and
// fills in the request's effective days. It returns a warning result when
// consumption flags one; the request must not be persisted in that case.
func (s *RequestService) prepareAnnual(ctx context.Context, request *leave.LeaveRequest) (SubmitResult, error) {
	u, err := s.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load user: %w", err)
	}
	if u.JoinDate == nil {
		return SubmitResult{}, user.ErrJoinDateNotSet
	}

	totalLeaves := CalculateEntitlement(u.JoinDate, s.now())
	remaining := totalLeaves - u.UsedLeaves

	countryCode := s.resolveCountryCode(ctx)
	cons := s.consumption.Calculate(ctx, request.Duration, request.StartDate, request.EndDate, request.RequestedDays, countryCode)

	if cons.HasWarning {
		return SubmitResult{Warning: &cons}, nil
	}

	if cons.EffectiveDays > remaining {
		return SubmitResult{}, &leave.InsufficientBalanceError{
			Remaining: remaining,
			Requested: cons.EffectiveDays,
		}
	}

	if err := s.checkOverlap(ctx, *request); err != nil {
		return SubmitResult{}, err
	}

	request.EffectiveDays = &cons.EffectiveDays
	return SubmitResult{}, nil
}

// checkOverlap converts the new request and each of the user's pending or
// approved annual requests to intervals and rejects on any pairwise overlap.
func (s *RequestService) checkOverlap(ctx context.Context, request leave.LeaveRequest) error {
	existing, err := s.leaveRepo.ListByUserCategoryStatus(ctx, request.UserID, leave.CategoryAnnual, leave.ActiveStatuses)
	if err != nil {
		return fmt.Errorf("list active leave requests: %w", err)
	}

	newIntervals := Intervals(request.Duration, request.StartDate, request.EndDate, request.StartTime, request.EndTime)

	for _, other := range existing {
		otherIntervals := Intervals(other.Duration, other.StartDate, other.EndDate, other.StartTime, other.EndTime)
		for _, a := range newIntervals {
			for _, b := range otherIntervals {
				if Overlaps(a, b) {
					return &leave.OverlapError{
						Status:    other.Status,
						StartDate: other.StartDate,
						EndDate:   other.EndDate,
					}
				}
			}
		}
	}
	return nil
}

// Cancel transitions the requester's own pending request to cancelled.
func (s *RequestService) Cancel(ctx context.Context, requestID, userID string) (leave.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.UserID != userID {
		return leave.LeaveRequest{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	at := s.now()
	if err := s.leaveRepo.UpdateStatus(ctx, request.ID, leave.StatusCancelled, &userID, &at, nil); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("cancel leave request: %w", err)
	}
	request.Status = leave.StatusCancelled

	return request, nil
}

// Approve transitions a pending request to approved and, for annual leave,
// recomputes the owner's used balance from scratch.
func (s *RequestService) Approve(ctx context.Context, requestID, approverID string) (leave.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	// The status flip and the balance recompute must land together, or an
	// approved request could be left uncounted.
	at := s.now()
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.leaveRepo.UpdateStatus(ctx, request.ID, leave.StatusApproved, &approverID, &at, nil); err != nil {
			return fmt.Errorf("approve leave request: %w", err)
		}
		if request.Category == leave.CategoryAnnual {
			return s.RecomputeUsedLeaves(ctx, request.UserID)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.Status = leave.StatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &at

	return request, nil
}

// Reject transitions a pending request to rejected.
func (s *RequestService) Reject(ctx context.Context, requestID, approverID, reason string) (leave.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyProcessed
	}

	at := s.now()
	if err := s.leaveRepo.UpdateStatus(ctx, request.ID, leave.StatusRejected, &approverID, &at, &reason); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("reject leave request: %w", err)
	}
	request.Status = leave.StatusRejected
	request.RejectionReason = &reason
	request.ApprovedBy = &approverID
	request.ApprovedAt = &at

	return request, nil
}

// Delete removes the requester's own request entirely. Deleting an annual
// request recomputes the used balance, since an approved one was counted.
func (s *RequestService) Delete(ctx context.Context, requestID, userID string) error {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.UserID != userID {
		return leave.ErrNotRequestOwner
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.leaveRepo.Delete(ctx, request.ID); err != nil {
			return fmt.Errorf("delete leave request: %w", err)
		}
		if request.Category == leave.CategoryAnnual {
			return s.RecomputeUsedLeaves(ctx, request.UserID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("leave request deleted",
		"request_id", request.ID,
		"user_id", request.UserID,
		"status", request.Status)
	return nil
}

// ListMy returns all of a user's leave requests.
func (s *RequestService) ListMy(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return s.leaveRepo.ListByUser(ctx, userID)
}

// RecomputeUsedLeaves overwrites the user's used balance with the sum of
// effective days (falling back to requested days) over currently approved
// annual requests. Always a full recompute from the store, never an
// incremental delta, so concurrent edits and deletions cannot cause drift.
func (s *RequestService) RecomputeUsedLeaves(ctx context.Context, userID string) error {
	approved, err := s.leaveRepo.ListByUserCategoryStatus(ctx, userID, leave.CategoryAnnual, []leave.Status{leave.StatusApproved})
	if err != nil {
		return fmt.Errorf("list approved leave requests: %w", err)
	}

	// Repeated 0.25/0.5 additions stay exact in decimal.
	total := decimal.Zero
	for _, request := range approved {
		total = total.Add(decimal.NewFromFloat(request.Consumed()))
	}

	used, _ := total.Float64()
	if err := s.userRepo.UpdateUsedLeaves(ctx, userID, used); err != nil {
		return fmt.Errorf("update used leaves: %w", err)
	}

	s.logger.Debug("used leaves recomputed", "user_id", userID, "used_leaves", used)
	return nil
}

func (s *RequestService) resolveCountryCode(ctx context.Context) string {
	c, err := s.companyRepo.GetActive(ctx)
	if err != nil {
		s.logger.Warn("company lookup failed, excluding weekends only", "error", err)
		return ""
	}
	if c.CountryCode == nil {
		return ""
	}
	return *c.CountryCode
}

// parseQuarterTimes validates the quarter-day clock times. When both are
// supplied the block must be exactly two hours; when either is missing the
// request carries no overlap data, which is allowed.
func parseQuarterTimes(duration leave.Duration, startTime, endTime string) (*int, *int, error) {
	if duration != leave.DurationQuarterDay {
		return nil, nil, nil
	}
	if validator.IsEmpty(startTime) || validator.IsEmpty(endTime) {
		return nil, nil, nil
	}

	start, ok := validator.ParseClockTime(startTime)
	if !ok {
		return nil, nil, leave.ErrInvalidQuarterDuration
	}
	end, ok := validator.ParseClockTime(endTime)
	if !ok {
		return nil, nil, leave.ErrInvalidQuarterDuration
	}
	if end-start != QuarterDayMinutes {
		return nil, nil, leave.ErrInvalidQuarterDuration
	}
	return &start, &end, nil
}
