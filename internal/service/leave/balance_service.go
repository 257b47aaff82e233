package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/user"
)

// Balance is a view over the user record: accrued entitlement, consumption
// by approved annual requests, and what is left.
type Balance struct {
	UserID          string     `json:"user_id"`
	JoinDate        *time.Time `json:"join_date,omitempty"`
	TotalLeaves     float64    `json:"total_leaves"`
	UsedLeaves      float64    `json:"used_leaves"`
	RemainingLeaves float64    `json:"remaining_leaves"`
}

type BalanceService struct {
	userRepo user.UserRepository
	logger   *slog.Logger

	now func() time.Time
}

func NewBalanceService(userRepo user.UserRepository, logger *slog.Logger) *BalanceService {
	return &BalanceService{userRepo: userRepo, logger: logger, now: time.Now}
}

// GetBalance computes the entitlement live from the join date, so a balance
// read is always current even between periodic recomputes.
func (s *BalanceService) GetBalance(ctx context.Context, userID string) (Balance, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Balance{}, err
	}

	total := CalculateEntitlement(u.JoinDate, s.now())
	return Balance{
		UserID:          u.ID,
		JoinDate:        u.JoinDate,
		TotalLeaves:     total,
		UsedLeaves:      u.UsedLeaves,
		RemainingLeaves: total - u.UsedLeaves,
	}, nil
}

// RecomputeEntitlements refreshes the stored entitlement of every active
// user. Run periodically by the scheduler; each user is just one pure
// calculation and one write.
func (s *BalanceService) RecomputeEntitlements(ctx context.Context) error {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	updated := 0
	for _, u := range users {
		total := CalculateEntitlement(u.JoinDate, s.now())
		if total == u.TotalLeaves {
			continue
		}
		if err := s.userRepo.UpdateTotalLeaves(ctx, u.ID, total); err != nil {
			s.logger.Error("entitlement update failed", "user_id", u.ID, "error", err)
			continue
		}
		updated++
	}

	s.logger.Info("entitlement recompute finished", "users", len(users), "updated", updated)
	return nil
}
