package salaryprofile

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	profileerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=salary_profile_service.go -destination=mock/salary_profile_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryProfileRequest) (SalaryProfileResponse, error)
	GetActiveByEmployee(ctx context.Context, companyID, employeeID string) (SalaryProfileResponse, error)
	GetHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryProfileResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryProfileResponse, error)
	SeedDefault(ctx context.Context, companyID, employeeID string) (SalaryProfileResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salaryprofile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryprofile.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Create activates a new profile for the employee. The previous active
// profile, if any, is superseded in the same transaction so the single
// active profile invariant holds.
func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryProfileRequest,
) (SalaryProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create salary profile requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryProfileResponse{}, profileerrors.ErrInvalidCompanyID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryProfileResponse{}, profileerrors.ErrInvalidEmployeeID
	}
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return SalaryProfileResponse{}, profileerrors.ErrInvalidEffectiveFrom
	}

	if err := s.validateAmounts(ctx, companyID, req.Amounts); err != nil {
		return SalaryProfileResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary profile begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeactivateByEmployee(ctx, companyID, req.EmployeeID); err != nil {
		s.logger.Error("create salary profile supersede failed", zap.Error(err))
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	profile := &SalaryProfile{
		ID:                uuid.New(),
		CompanyID:         cid,
		EmployeeID:        employeeID,
		EffectiveFrom:     effectiveFrom,
		Active:            true,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		BankIFSC:          req.BankIFSC,
		PAN:               req.PAN,
		PFNumber:          req.PFNumber,
		UAN:               req.UAN,
		ESINumber:         req.ESINumber,
		Amounts:           amountRows(req.Amounts),
	}

	if err := qtx.Create(ctx, profile); err != nil {
		s.logger.Error("create salary profile persist failed", zap.Error(err))
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary profile commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryProfileResponse{}, err
	}

	s.logger.Info("create salary profile success",
		zap.String("request_id", rid),
		zap.String("profile_id", profile.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*profile), nil
}

func (s *service) GetActiveByEmployee(ctx context.Context, companyID, employeeID string) (SalaryProfileResponse, error) {
	s.logger.Debug("get active salary profile requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)
	profile, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("get active salary profile failed", zap.Error(err))
		return SalaryProfileResponse{}, mapActiveLookupError(err)
	}
	return mapToResponse(*profile), nil
}

func (s *service) GetHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryProfileResponse, error) {
	s.logger.Debug("get salary profile history requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)
	profiles, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("get salary profile history failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(profiles), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryProfileResponse, error) {
	profile, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get salary profile by id failed", zap.Error(err))
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*profile), nil
}

// SeedDefault creates a zero-amount active profile for a fresh employee so
// payroll has a row to work from. Unlike Create it never supersedes: if the
// employee already has an active profile the unique index rejects the insert
// and the caller treats that as already-seeded.
func (s *service) SeedDefault(ctx context.Context, companyID, employeeID string) (SalaryProfileResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryProfileResponse{}, profileerrors.ErrInvalidCompanyID
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return SalaryProfileResponse{}, profileerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("seed salary profile begin tx failed", zap.Error(err))
		return SalaryProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	profile := &SalaryProfile{
		ID:            uuid.New(),
		CompanyID:     cid,
		EmployeeID:    eid,
		EffectiveFrom: time.Now().UTC().Truncate(24 * time.Hour),
		Active:        true,
	}

	if err := qtx.Create(ctx, profile); err != nil {
		s.logger.Error("seed salary profile persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("seed salary profile commit failed", zap.Error(err))
		return SalaryProfileResponse{}, err
	}

	s.logger.Info("seed salary profile success",
		zap.String("profile_id", profile.ID.String()),
		zap.String("employee_id", employeeID),
	)

	return mapToResponse(*profile), nil
}

func (s *service) validateAmounts(ctx context.Context, companyID string, amounts map[string]int64) error {
	codes, err := s.repo.ListActiveComponentCodes(ctx, companyID)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		known[code] = struct{}{}
	}

	for code, amount := range amounts {
		if _, ok := known[code]; !ok {
			s.logger.Warn("salary profile amount for unknown component",
				zap.String("company_id", companyID),
				zap.String("code", code),
			)
			return profileerrors.ErrUnknownComponentCode
		}
		if amount < 0 {
			return profileerrors.ErrNegativeAmount
		}
	}

	return nil
}

func mapActiveLookupError(err error) error {
	mapped := mapRepositoryError(err)
	if mapped == profileerrors.ErrProfileNotFound {
		return profileerrors.ErrNoActiveProfile
	}
	return mapped
}

func amountRows(amounts map[string]int64) []ProfileAmount {
	rows := make([]ProfileAmount, 0, len(amounts))
	for code, amount := range amounts {
		rows = append(rows, ProfileAmount{
			ID:            uuid.New(),
			ComponentCode: code,
			Amount:        amount,
		})
	}
	return rows
}

func mapToResponse(profile SalaryProfile) SalaryProfileResponse {
	return SalaryProfileResponse{
		ID:                profile.ID.String(),
		CompanyID:         profile.CompanyID.String(),
		EmployeeID:        profile.EmployeeID.String(),
		EffectiveFrom:     profile.EffectiveFrom.Format("2006-01-02"),
		Active:            profile.Active,
		Amounts:           profile.AmountMap(),
		BankName:          profile.BankName,
		BankAccountNumber: profile.BankAccountNumber,
		BankIFSC:          profile.BankIFSC,
		PAN:               profile.PAN,
		PFNumber:          profile.PFNumber,
		UAN:               profile.UAN,
		ESINumber:         profile.ESINumber,
	}
}

func mapToListResponse(profiles []SalaryProfile) []SalaryProfileResponse {
	res := make([]SalaryProfileResponse, len(profiles))
	for i, p := range profiles {
		res[i] = mapToResponse(p)
	}
	return res
}
