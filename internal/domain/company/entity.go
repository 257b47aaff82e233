package company

import "time"

type Company struct {
	ID      string
	Name    string
	Address *string

	// CountryCode is the ISO-3166-1 alpha-2 code used to resolve public
	// holidays; nil means holidays are not excluded from leave consumption.
	CountryCode *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
