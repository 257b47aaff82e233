package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/company"
	"github.com/workmate-hq/attendance-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

func (r *companyRepositoryImpl) GetActive(ctx context.Context) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, country_code, created_at, updated_at
		FROM companies
		ORDER BY created_at ASC
		LIMIT 1
	`
	var c company.Company
	err := q.QueryRow(ctx, query).Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.CountryCode,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, err
}

func (r *companyRepositoryImpl) UpdateCountryCode(ctx context.Context, id string, countryCode *string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE companies SET country_code = $1, updated_at = NOW() WHERE id = $2`, countryCode, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return company.ErrCompanyNotFound
	}
	return nil
}
