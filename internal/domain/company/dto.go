package company

// UpdateCountryCodeRequest sets or clears the country used for public
// holiday exclusion. A null country code clears it.
type UpdateCountryCodeRequest struct {
	CountryCode *string `json:"country_code"`
}

type CompanyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     *string `json:"address,omitempty"`
	CountryCode *string `json:"country_code"`
}

func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		CountryCode: c.CountryCode,
	}
}
