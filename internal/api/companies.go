package api

import (
	"context"
	"net/http"

	"github.com/alexanderramin/workhub/internal/domain"
)

// CompaniesAPI implements repository.CompanyRepo over REST.
type CompaniesAPI struct {
	c *Client
}

type createCompanyRequest struct {
	Name           string `json:"name"`
	BusinessNumber string `json:"businessNumber"`
	CEOName        string `json:"ceoName,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Status         string `json:"status,omitempty"`
}

func (a *CompaniesAPI) List(ctx context.Context) ([]domain.Company, error) {
	var dtos []companyDTO
	if err := a.c.do(ctx, http.MethodGet, "/companies", nil, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Company, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (a *CompaniesAPI) Create(ctx context.Context, c *domain.Company) error {
	req := createCompanyRequest{
		Name:           c.Name,
		BusinessNumber: c.BusinessNumber,
		CEOName:        c.CEOName,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Status:         string(c.Status),
	}
	var dto companyDTO
	if err := a.c.do(ctx, http.MethodPost, "/companies", nil, req, &dto); err != nil {
		return err
	}
	*c = dto.toDomain()
	return nil
}
