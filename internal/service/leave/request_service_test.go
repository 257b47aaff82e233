package leave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/company"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/leave"
	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
)

// In-memory fakes so the orchestration paths run without Postgres.

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRepo) ListByUserCategoryStatus(_ context.Context, userID string, category leave.Category, statuses []leave.Status) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.UserID != userID || request.Category != category {
			continue
		}
		for _, status := range statuses {
			if request.Status == status {
				out = append(out, request)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLeaveRepo) ListByUser(_ context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.UserID == userID {
			out = append(out, request)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.Status, actorID *string, at *time.Time, rejectionReason *string) error {
	request, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	request.Status = status
	request.ApprovedBy = actorID
	request.ApprovedAt = at
	request.RejectionReason = rejectionReason
	f.requests[id] = request
	return nil
}

func (f *fakeLeaveRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

// seed stores a request directly, bypassing Submit's checks.
func (f *fakeLeaveRepo) seed(request leave.LeaveRequest) leave.LeaveRequest {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	f.requests[request.ID] = request
	return request
}

type fakeUserRepo struct {
	users map[string]user.User

	updateUsedLeavesErr error
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) UpdateTotalLeaves(_ context.Context, id string, totalLeaves float64) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.TotalLeaves = totalLeaves
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) UpdateUsedLeaves(_ context.Context, id string, usedLeaves float64) error {
	if f.updateUsedLeavesErr != nil {
		return f.updateUsedLeavesErr
	}
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.UsedLeaves = usedLeaves
	f.users[id] = u
	return nil
}

type fakeCompanyRepo struct {
	active company.Company
	err    error
}

func (f *fakeCompanyRepo) GetActive(_ context.Context) (company.Company, error) {
	if f.err != nil {
		return company.Company{}, f.err
	}
	return f.active, nil
}

func (f *fakeCompanyRepo) UpdateCountryCode(_ context.Context, _ string, countryCode *string) error {
	f.active.CountryCode = countryCode
	return nil
}

// fakeTransactor restores both fakes to their prior state when fn fails,
// mirroring what a rolled-back database transaction leaves behind.
func fakeTransactor(leaveRepo *fakeLeaveRepo, userRepo *fakeUserRepo) Transactor {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		savedRequests := make(map[string]leave.LeaveRequest, len(leaveRepo.requests))
		for id, request := range leaveRepo.requests {
			savedRequests[id] = request
		}
		savedUsers := make(map[string]user.User, len(userRepo.users))
		for id, u := range userRepo.users {
			savedUsers[id] = u
		}

		if err := fn(ctx); err != nil {
			leaveRepo.requests = savedRequests
			userRepo.users = savedUsers
			return err
		}
		return nil
	}
}

type fixture struct {
	service   *RequestService
	leaveRepo *fakeLeaveRepo
	userRepo  *fakeUserRepo
}

// newFixture wires a RequestService against fakes, with the clock pinned to
// 2024-06-01 and no configured country.
func newFixture(t *testing.T, users ...user.User) fixture {
	t.Helper()

	leaveRepo := newFakeLeaveRepo()
	userRepo := newFakeUserRepo(users...)
	companyRepo := &fakeCompanyRepo{active: company.Company{ID: "co-1", Name: "Workmate"}}
	calc := NewConsumptionCalculator(&stubDirectory{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewRequestService(leaveRepo, userRepo, companyRepo, calc, fakeTransactor(leaveRepo, userRepo), logger)
	service.now = func() time.Time { return date(2024, 6, 1) }

	return fixture{service: service, leaveRepo: leaveRepo, userRepo: userRepo}
}

// employee has 12 whole months of tenure at the pinned clock, so a live
// entitlement of 15 days.
func employee() user.User {
	return user.User{
		ID:       "user-1",
		Email:    "dana@workmate.test",
		Name:     "Dana",
		Role:     user.RoleEmployee,
		JoinDate: datePtr(2023, 6, 1),
		IsActive: true,
	}
}

func TestSubmit_FullWeekAnnualLeave(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())

	result, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-21",
		Reason:    "family trip",
	})
	require.NoError(t, err)
	require.Nil(t, result.Warning)
	require.NotNil(t, result.Request)

	assert.Equal(t, leave.StatusPending, result.Request.Status)
	assert.Equal(t, 7.0, result.Request.RequestedDays)
	require.NotNil(t, result.Request.EffectiveDays)
	assert.Equal(t, 5.0, *result.Request.EffectiveDays)

	stored, err := fx.leaveRepo.GetByID(context.Background(), result.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	ctx := context.Background()

	base := leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-15",
	}

	tests := []struct {
		name    string
		mutate  func(*leave.CreateLeaveRequestRequest)
		wantErr error
	}{
		{"missing start date", func(r *leave.CreateLeaveRequestRequest) { r.StartDate = "" }, leave.ErrStartDateRequired},
		{"malformed start date", func(r *leave.CreateLeaveRequestRequest) { r.StartDate = "15/01/2024" }, leave.ErrStartDateRequired},
		{"unknown category", func(r *leave.CreateLeaveRequestRequest) { r.Category = "sabbatical" }, leave.ErrInvalidCategory},
		{"unknown duration", func(r *leave.CreateLeaveRequestRequest) { r.Duration = "two_days" }, leave.ErrInvalidDuration},
		{"end before start", func(r *leave.CreateLeaveRequestRequest) { r.EndDate = "2024-01-10" }, leave.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := fx.service.Submit(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmit_InsufficientBalance(t *testing.T) {
	t.Parallel()

	// Three whole months of tenure at the pinned clock, so 3 days total.
	junior := employee()
	junior.JoinDate = datePtr(2024, 3, 1)
	fx := newFixture(t, junior)

	_, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-21",
	})

	require.ErrorIs(t, err, leave.ErrInsufficientBalance)
	var balanceErr *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, 3.0, balanceErr.Remaining)
	assert.Equal(t, 5.0, balanceErr.Requested)

	assert.Empty(t, fx.leaveRepo.requests)
}

func TestSubmit_OverlapRejected(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:    "user-1",
		Category:  leave.CategoryAnnual,
		Duration:  leave.DurationFullDay,
		StartDate: date(2024, 1, 15),
		EndDate:   date(2024, 1, 15),
		Status:    leave.StatusApproved,
	})

	_, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "half_day_am",
		StartDate: "2024-01-15",
	})

	require.ErrorIs(t, err, leave.ErrOverlappingLeave)
	var overlapErr *leave.OverlapError
	require.ErrorAs(t, err, &overlapErr)
	assert.Equal(t, leave.StatusApproved, overlapErr.Status)
}

func TestSubmit_BackToBackHalfDaysAllowed(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:    "user-1",
		Category:  leave.CategoryAnnual,
		Duration:  leave.DurationHalfDayAM,
		StartDate: date(2024, 1, 15),
		EndDate:   date(2024, 1, 15),
		Status:    leave.StatusApproved,
	})

	result, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "half_day_pm",
		StartDate: "2024-01-15",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Request)
	assert.Equal(t, 0.5, result.Request.RequestedDays)
}

func TestSubmit_QuarterDay(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	ctx := context.Background()

	// A one-hour block is not a quarter day.
	_, err := fx.service.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "quarter_day",
		StartDate: "2024-01-15",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidQuarterDuration)

	// Without clock times there is no overlap data, so even a same-day
	// approved request does not block it.
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:    "user-1",
		Category:  leave.CategoryAnnual,
		Duration:  leave.DurationFullDay,
		StartDate: date(2024, 1, 15),
		EndDate:   date(2024, 1, 15),
		Status:    leave.StatusApproved,
	})
	result, err := fx.service.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "quarter_day",
		StartDate: "2024-01-15",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Request)
	assert.Equal(t, 0.25, result.Request.RequestedDays)
	assert.Nil(t, result.Request.StartTime)
}

func TestSubmit_WeekendWarningPersistsNothing(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())

	result, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-13",
		EndDate:   "2024-01-14",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Warning)
	assert.Nil(t, result.Request)
	assert.True(t, result.Warning.HasWarning)
	assert.Empty(t, fx.leaveRepo.requests)
}

func TestSubmit_SickLeaveSkipsBalanceChecks(t *testing.T) {
	t.Parallel()

	// No balance, weekend span: sick leave goes through anyway.
	junior := employee()
	junior.JoinDate = nil
	fx := newFixture(t, junior)

	result, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "sick",
		Duration:  "full_day",
		StartDate: "2024-01-13",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Request)
	assert.Nil(t, result.Warning)
	assert.Nil(t, result.Request.EffectiveDays)
}

func TestSubmit_AnnualRequiresJoinDate(t *testing.T) {
	t.Parallel()

	unset := employee()
	unset.JoinDate = nil
	fx := newFixture(t, unset)

	_, err := fx.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-15",
	})
	assert.ErrorIs(t, err, user.ErrJoinDateNotSet)
	assert.Empty(t, fx.leaveRepo.requests)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	pending := fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:   "user-1",
		Category: leave.CategoryAnnual,
		Duration: leave.DurationFullDay,
		Status:   leave.StatusPending,
	})
	approved := fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:   "user-1",
		Category: leave.CategoryAnnual,
		Duration: leave.DurationFullDay,
		Status:   leave.StatusApproved,
	})
	ctx := context.Background()

	_, err := fx.service.Cancel(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = fx.service.Cancel(ctx, pending.ID, "user-2")
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	_, err = fx.service.Cancel(ctx, approved.ID, "user-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	cancelled, err := fx.service.Cancel(ctx, pending.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)
}

func TestApprove_RecomputesUsedLeaves(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	ctx := context.Background()

	result, err := fx.service.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-21",
	})
	require.NoError(t, err)

	approved, err := fx.service.Approve(ctx, result.Request.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "manager-1", *approved.ApprovedBy)

	u, err := fx.userRepo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, u.UsedLeaves)

	_, err = fx.service.Approve(ctx, result.Request.ID, "manager-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestApprove_FailedRecomputeRollsBackStatus(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	ctx := context.Background()

	result, err := fx.service.Submit(ctx, leave.CreateLeaveRequestRequest{
		UserID:    "user-1",
		Category:  "annual",
		Duration:  "full_day",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-21",
	})
	require.NoError(t, err)

	fx.userRepo.updateUsedLeavesErr = errors.New("write refused")
	_, err = fx.service.Approve(ctx, result.Request.ID, "manager-1")
	require.Error(t, err)

	// The status flip must not outlive the failed recompute.
	stored, err := fx.leaveRepo.GetByID(ctx, result.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)

	u, err := fx.userRepo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, u.UsedLeaves)

	// Retrying after the store recovers succeeds end to end.
	fx.userRepo.updateUsedLeavesErr = nil
	approved, err := fx.service.Approve(ctx, result.Request.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)

	u, err = fx.userRepo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, u.UsedLeaves)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	ctx := context.Background()

	effective := 5.0
	approved := fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:        "user-1",
		Category:      leave.CategoryAnnual,
		Duration:      leave.DurationFullDay,
		RequestedDays: 7,
		EffectiveDays: &effective,
		Status:        leave.StatusApproved,
	})
	require.NoError(t, fx.service.RecomputeUsedLeaves(ctx, "user-1"))

	u, err := fx.userRepo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 5.0, u.UsedLeaves)

	assert.ErrorIs(t, fx.service.Delete(ctx, "missing", "user-1"), leave.ErrLeaveRequestNotFound)
	assert.ErrorIs(t, fx.service.Delete(ctx, approved.ID, "user-2"), leave.ErrNotRequestOwner)

	require.NoError(t, fx.service.Delete(ctx, approved.ID, "user-1"))

	_, err = fx.leaveRepo.GetByID(ctx, approved.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	// Removing an approved annual request frees its days again.
	u, err = fx.userRepo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, u.UsedLeaves)
}

func TestReject(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	pending := fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:   "user-1",
		Category: leave.CategoryAnnual,
		Duration: leave.DurationFullDay,
		Status:   leave.StatusPending,
	})

	rejected, err := fx.service.Reject(context.Background(), pending.ID, "manager-1", "blackout week")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "blackout week", *rejected.RejectionReason)

	_, err = fx.service.Reject(context.Background(), pending.ID, "manager-1", "again")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestRecomputeUsedLeaves_SumsConsumedDays(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, employee())
	ctx := context.Background()

	effective := 5.0
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:        "user-1",
		Category:      leave.CategoryAnnual,
		Duration:      leave.DurationFullDay,
		RequestedDays: 7,
		EffectiveDays: &effective,
		Status:        leave.StatusApproved,
	})
	// No effective days recorded: falls back to the requested count.
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:        "user-1",
		Category:      leave.CategoryAnnual,
		Duration:      leave.DurationHalfDayAM,
		RequestedDays: 0.5,
		Status:        leave.StatusApproved,
	})
	// Pending, cancelled and non-annual requests never count.
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:        "user-1",
		Category:      leave.CategoryAnnual,
		Duration:      leave.DurationFullDay,
		RequestedDays: 3,
		Status:        leave.StatusPending,
	})
	fx.leaveRepo.seed(leave.LeaveRequest{
		UserID:        "user-1",
		Category:      leave.CategorySick,
		Duration:      leave.DurationFullDay,
		RequestedDays: 2,
		Status:        leave.StatusApproved,
	})

	require.NoError(t, fx.service.RecomputeUsedLeaves(ctx, "user-1"))

	u, err := fx.userRepo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5.5, u.UsedLeaves)
}
