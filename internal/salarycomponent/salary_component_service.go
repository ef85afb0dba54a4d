package salarycomponent

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	componenterrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=salary_component_service.go -destination=mock/salary_component_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryComponentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryComponentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryComponentRequest) (SalaryComponentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	SeedDefaults(ctx context.Context, companyID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycomponent.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create salary component requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("code", req.Code),
	)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryComponentResponse{}, componenterrors.ErrInvalidCompanyID
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	percentageOf, percentageValue, err := normalizePercentage(
		req.Kind, req.Calc, req.PercentageOf, req.PercentageValue,
	)
	if err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary component begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component := &SalaryComponent{
		ID:              uuid.New(),
		CompanyID:       cid,
		Name:            req.Name,
		Code:            code,
		Kind:            req.Kind,
		Calc:            req.Calc,
		PercentageOf:    percentageOf,
		PercentageValue: percentageValue,
		Taxable:         req.Taxable,
		PFApplicable:    req.PFApplicable,
		ESIApplicable:   req.ESIApplicable,
		SystemDefined:   false,
		Active:          true,
		SortOrder:       req.SortOrder,
	}

	if err := qtx.Create(ctx, component); err != nil {
		s.logger.Error("create salary component persist failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary component commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	s.logger.Info("create salary component success",
		zap.String("request_id", rid),
		zap.String("component_id", component.ID.String()),
		zap.String("code", component.Code),
	)

	return mapToResponse(*component), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]SalaryComponentResponse, error) {
	s.logger.Debug("get all salary components requested", zap.String("company_id", companyID))
	components, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all salary components failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(components), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryComponentResponse, error) {
	s.logger.Debug("get salary component by id requested",
		zap.String("company_id", companyID),
		zap.String("component_id", id),
	)
	component, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get salary component by id failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*component), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	s.logger.Debug("update salary component requested",
		zap.String("company_id", companyID),
		zap.String("component_id", id),
	)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	percentageOf, percentageValue, err := normalizePercentage(
		req.Kind, req.Calc, req.PercentageOf, req.PercentageValue,
	)
	if err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("update salary component fetch existing failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	// Statutory math keys off the code and kind of seeded components, so
	// those stay frozen once system-defined.
	if component.SystemDefined && (component.Code != code || component.Kind != req.Kind) {
		s.logger.Warn("update salary component rejected for system component",
			zap.String("component_id", id),
			zap.String("code", component.Code),
		)
		return SalaryComponentResponse{}, componenterrors.ErrSystemComponentImmutable
	}

	component.Name = req.Name
	component.Code = code
	component.Kind = req.Kind
	component.Calc = req.Calc
	component.PercentageOf = percentageOf
	component.PercentageValue = percentageValue
	component.Taxable = req.Taxable
	component.PFApplicable = req.PFApplicable
	component.ESIApplicable = req.ESIApplicable
	component.Active = req.Active
	component.SortOrder = req.SortOrder

	if err := qtx.Update(ctx, component); err != nil {
		s.logger.Error("update salary component persist failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary component commit failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	s.logger.Info("update salary component success", zap.String("component_id", id))

	return mapToResponse(*component), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	s.logger.Debug("delete salary component requested",
		zap.String("company_id", companyID),
		zap.String("component_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete salary component begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("delete salary component fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if component.SystemDefined {
		s.logger.Warn("delete salary component rejected for system component",
			zap.String("component_id", id),
			zap.String("code", component.Code),
		)
		return componenterrors.ErrSystemComponentUndeletable
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete salary component failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete salary component commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete salary component success", zap.String("component_id", id))
	return nil
}

// SeedDefaults provisions the standard component set for a new company. The
// seeded rows are system-defined: payroll relies on their codes and flags.
func (s *service) SeedDefaults(ctx context.Context, companyID string) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return componenterrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("seed salary components begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, component := range defaultComponents(cid) {
		component := component
		if err := qtx.Create(ctx, &component); err != nil {
			s.logger.Error("seed salary components persist failed",
				zap.String("company_id", companyID),
				zap.String("code", component.Code),
				zap.Error(err),
			)
			return mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("seed salary components commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("seed salary components success", zap.String("company_id", companyID))
	return nil
}

func defaultComponents(companyID uuid.UUID) []SalaryComponent {
	hraBase := "BASIC"
	hraPct := decimal.NewFromInt(40)

	return []SalaryComponent{
		{
			ID:            uuid.New(),
			CompanyID:     companyID,
			Name:          "Basic",
			Code:          "BASIC",
			Kind:          KindEarning,
			Calc:          CalcFixed,
			Taxable:       true,
			PFApplicable:  true,
			ESIApplicable: true,
			SystemDefined: true,
			Active:        true,
			SortOrder:     1,
		},
		{
			ID:              uuid.New(),
			CompanyID:       companyID,
			Name:            "House Rent Allowance",
			Code:            "HRA",
			Kind:            KindEarning,
			Calc:            CalcPercentage,
			PercentageOf:    &hraBase,
			PercentageValue: &hraPct,
			Taxable:         true,
			ESIApplicable:   true,
			SystemDefined:   true,
			Active:          true,
			SortOrder:       2,
		},
		{
			ID:            uuid.New(),
			CompanyID:     companyID,
			Name:          "Conveyance Allowance",
			Code:          "CONVEYANCE",
			Kind:          KindEarning,
			Calc:          CalcFixed,
			Taxable:       true,
			ESIApplicable: true,
			SystemDefined: true,
			Active:        true,
			SortOrder:     3,
		},
		{
			ID:            uuid.New(),
			CompanyID:     companyID,
			Name:          "Special Allowance",
			Code:          "SPECIAL",
			Kind:          KindEarning,
			Calc:          CalcFixed,
			Taxable:       true,
			ESIApplicable: true,
			SystemDefined: true,
			Active:        true,
			SortOrder:     4,
		},
	}
}

func normalizePercentage(
	kind, calc string,
	percentageOf *string,
	percentageValue *float64,
) (*string, *decimal.Decimal, error) {
	if calc != CalcPercentage {
		return nil, nil, nil
	}
	if percentageOf == nil || percentageValue == nil || *percentageValue <= 0 {
		return nil, nil, componenterrors.ErrPercentageBaseRequired
	}

	base := strings.ToUpper(strings.TrimSpace(*percentageOf))
	if base == "" {
		return nil, nil, componenterrors.ErrPercentageBaseRequired
	}
	if kind == KindEarning && base == PercentageBaseGross {
		return nil, nil, componenterrors.ErrGrossBaseOnEarning
	}

	pct := decimal.NewFromFloat(*percentageValue)
	return &base, &pct, nil
}

func mapToResponse(component SalaryComponent) SalaryComponentResponse {
	resp := SalaryComponentResponse{
		ID:            component.ID.String(),
		CompanyID:     component.CompanyID.String(),
		Name:          component.Name,
		Code:          component.Code,
		Kind:          component.Kind,
		Calc:          component.Calc,
		PercentageOf:  component.PercentageOf,
		Taxable:       component.Taxable,
		PFApplicable:  component.PFApplicable,
		ESIApplicable: component.ESIApplicable,
		SystemDefined: component.SystemDefined,
		Active:        component.Active,
		SortOrder:     component.SortOrder,
	}
	if component.PercentageValue != nil {
		v, _ := component.PercentageValue.Float64()
		resp.PercentageValue = &v
	}
	return resp
}

func mapToListResponse(components []SalaryComponent) []SalaryComponentResponse {
	res := make([]SalaryComponentResponse, len(components))
	for i, c := range components {
		res[i] = mapToResponse(c)
	}
	return res
}
