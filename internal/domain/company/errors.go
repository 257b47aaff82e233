package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidCountryCode = errors.New("invalid country code")
)
