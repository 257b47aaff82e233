package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave requests
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Role         Role

	// JoinDate drives the annual-leave entitlement; nil until HR sets it.
	JoinDate *time.Time

	// TotalLeaves is the accrued entitlement; UsedLeaves is the recomputed
	// sum over currently approved annual requests. Both are overwritten by
	// full recomputes, never incremented.
	TotalLeaves float64
	UsedLeaves  float64

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}
