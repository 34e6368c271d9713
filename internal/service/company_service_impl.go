package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/repository"
)

type companyService struct {
	companies repository.CompanyRepo
	observer  UseCaseObserver
}

func NewCompanyService(companies repository.CompanyRepo, observers ...UseCaseObserver) CompanyService {
	return &companyService{companies: companies, observer: useCaseObserverOrNoop(observers)}
}

func (s *companyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *companyService) Create(ctx context.Context, form *CreateCompanyForm) (c *domain.Company, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "create-company", startedAt, fields, &err) }()

	if err := form.Validate(); err != nil {
		return nil, err
	}
	c = form.ToDomain()
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating company %q: %w", c.Name, err)
	}
	fields["company_id"] = c.ID
	return c, nil
}
