package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrManagerRoleRequired = errors.New("manager role required")
	ErrJoinDateNotSet      = errors.New("join date not set")
)
