package company

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/company"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/validator"
)

type CompanyService struct {
	companyRepo company.CompanyRepository
	logger      *slog.Logger
}

func NewCompanyService(companyRepo company.CompanyRepository, logger *slog.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, logger: logger}
}

// Get returns the active company record.
func (s *CompanyService) Get(ctx context.Context) (company.Company, error) {
	return s.companyRepo.GetActive(ctx)
}

// UpdateCountryCode sets the ISO-3166-1 alpha-2 country used for holiday
// exclusion, or clears it when nil.
func (s *CompanyService) UpdateCountryCode(ctx context.Context, countryCode *string) (company.Company, error) {
	if countryCode != nil && !validator.IsValidCountryCode(*countryCode) {
		return company.Company{}, company.ErrInvalidCountryCode
	}

	c, err := s.companyRepo.GetActive(ctx)
	if err != nil {
		return company.Company{}, err
	}

	if err := s.companyRepo.UpdateCountryCode(ctx, c.ID, countryCode); err != nil {
		return company.Company{}, fmt.Errorf("update country code: %w", err)
	}
	c.CountryCode = countryCode

	if countryCode != nil {
		s.logger.Info("company country code updated", "company_id", c.ID, "country_code", *countryCode)
	} else {
		s.logger.Info("company country code cleared", "company_id", c.ID)
	}
	return c, nil
}
