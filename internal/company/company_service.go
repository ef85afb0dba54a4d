package company

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	companyerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/company/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
)

// Seeder provisions a module's defaults for a freshly created company.
type Seeder interface {
	SeedDefaults(ctx context.Context, companyID string) error
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Onboard(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	seeders []Seeder
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, seeders []Seeder, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{db: db, repo: repo, seeders: seeders, logger: l}
}

// Onboard creates the company row and then provisions module defaults
// (salary components, payroll settings, leave policy and types). The company
// insert commits before seeding runs: seeders open their own transactions
// keyed by the new company id, so they need the row visible. A seeding
// failure leaves the company in place and surfaces as a provisioning error
// so the caller can retry or finish setup by hand.
func (s *service) Onboard(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("onboard company requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("onboard company begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = "India"
	}

	company := &Company{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		State:       req.State,
		Country:     country,
		GSTIN:       strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		PAN:         strings.ToUpper(strings.TrimSpace(req.PAN)),
		Active:      true,
	}

	if err := qtx.Create(ctx, company); err != nil {
		s.logger.Error("onboard company persist failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("onboard company commit failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}

	companyID := company.ID.String()
	for _, seeder := range s.seeders {
		if err := seeder.SeedDefaults(ctx, companyID); err != nil {
			s.logger.Error("onboard company seeding failed",
				zap.String("request_id", rid),
				zap.String("company_id", companyID),
				zap.Error(err),
			)
			return CompanyResponse{}, companyerrors.ErrSeedingFailed
		}
	}

	s.logger.Info("onboard company success",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("name", company.Name),
	)

	return mapToResponse(*company), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	s.logger.Debug("get all companies requested")
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all companies failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(companies), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	s.logger.Debug("get company by id requested", zap.String("company_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get company by id failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*company), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update company requested",
		zap.String("request_id", rid),
		zap.String("company_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update company begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	company, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	company.Name = strings.TrimSpace(req.Name)
	company.Email = strings.ToLower(strings.TrimSpace(req.Email))
	company.Phone = req.Phone
	company.AddressLine = req.AddressLine
	company.City = req.City
	company.State = req.State
	company.Country = req.Country
	company.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
	company.PAN = strings.ToUpper(strings.TrimSpace(req.PAN))
	company.Active = req.Active

	if err := qtx.Update(ctx, company); err != nil {
		s.logger.Error("update company persist failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update company commit failed", zap.String("request_id", rid), zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("update company success",
		zap.String("request_id", rid),
		zap.String("company_id", id),
	)

	return mapToResponse(*company), nil
}

func mapToResponse(company Company) CompanyResponse {
	return CompanyResponse{
		ID:          company.ID.String(),
		Name:        company.Name,
		Email:       company.Email,
		Phone:       company.Phone,
		AddressLine: company.AddressLine,
		City:        company.City,
		State:       company.State,
		Country:     company.Country,
		GSTIN:       company.GSTIN,
		PAN:         company.PAN,
		Active:      company.Active,
	}
}

func mapToListResponse(companies []Company) []CompanyResponse {
	responses := make([]CompanyResponse, 0, len(companies))
	for _, company := range companies {
		responses = append(responses, mapToResponse(company))
	}
	return responses
}
