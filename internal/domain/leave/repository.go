package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// ListByUserCategoryStatus returns the user's requests of the given
	// category whose status is in the given set, oldest first.
	ListByUserCategoryStatus(ctx context.Context, userID string, category Category, statuses []Status) ([]LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status, actorID *string, at *time.Time, rejectionReason *string) error
	Delete(ctx context.Context, id string) error
}
