package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workmate-hq/attendance-backend-go/internal/domain/company"
	"github.com/workmate-hq/attendance-backend-go/internal/handler/http/response"
	companyService "github.com/workmate-hq/attendance-backend-go/internal/service/company"
)

type CompanyHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateCountryCode(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService *companyService.CompanyService
}

func NewCompanyHandler(service *companyService.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: service}
}

// GetSettings implements CompanyHandler.
func (c *CompanyHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.companyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.ToResponse(settings))
}

// UpdateCountryCode implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdateCountryCode(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateCountryCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateCountryCode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := c.companyService.UpdateCountryCode(r.Context(), req.CountryCode)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company country updated", company.ToResponse(updated))
}
