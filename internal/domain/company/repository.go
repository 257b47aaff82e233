package company

import "context"

type CompanyRepository interface {
	// GetActive returns the single active company record.
	GetActive(ctx context.Context) (Company, error)
	UpdateCountryCode(ctx context.Context, id string, countryCode *string) error
}
