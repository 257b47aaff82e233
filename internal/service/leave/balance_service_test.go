package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
)

func TestGetBalance_LiveEntitlement(t *testing.T) {
	t.Parallel()

	u := employee()
	u.UsedLeaves = 4.5
	// Stale stored entitlement must not leak into the response.
	u.TotalLeaves = 1

	repo := newFakeUserRepo(u)
	svc := NewBalanceService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return date(2024, 6, 1) }

	balance, err := svc.GetBalance(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 15.0, balance.TotalLeaves)
	assert.Equal(t, 4.5, balance.UsedLeaves)
	assert.Equal(t, 10.5, balance.RemainingLeaves)
}

func TestGetBalance_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(newFakeUserRepo(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.GetBalance(context.Background(), "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRecomputeEntitlements(t *testing.T) {
	t.Parallel()

	stale := employee()
	stale.TotalLeaves = 11

	current := employee()
	current.ID = "user-2"
	current.JoinDate = datePtr(2021, 6, 1)
	current.TotalLeaves = 16

	inactive := employee()
	inactive.ID = "user-3"
	inactive.TotalLeaves = 0
	inactive.IsActive = false

	repo := newFakeUserRepo(stale, current, inactive)
	svc := NewBalanceService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return date(2024, 6, 1) }

	require.NoError(t, svc.RecomputeEntitlements(context.Background()))

	got, _ := repo.GetByID(context.Background(), "user-1")
	assert.Equal(t, 15.0, got.TotalLeaves)

	got, _ = repo.GetByID(context.Background(), "user-2")
	assert.Equal(t, 16.0, got.TotalLeaves)

	// Inactive users are skipped entirely.
	got, _ = repo.GetByID(context.Background(), "user-3")
	assert.Equal(t, 0.0, got.TotalLeaves)
}
