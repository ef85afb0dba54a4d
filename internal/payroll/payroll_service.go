package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/events"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/messaging/kafka"
	payrollerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/payroll/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/counter"
)

const (
	runLockKeyPrefix = "payroll:runlock:"
	runLockTTL       = 5 * time.Minute

	// Statutory line items sort after every configurable component.
	sortOrderPF  = 100
	sortOrderESI = 101
	sortOrderTDS = 102
)

func runLockKey(companyID string, periodStart time.Time) string {
	return runLockKeyPrefix + companyID + ":" + periodStart.Format("2006-01-02")
}

// ComponentSource feeds the company's active component set into a run.
type ComponentSource interface {
	ListActiveByCompany(ctx context.Context, companyID string) ([]salarycomponent.SalaryComponent, error)
}

// ProfileSource feeds the active salary profiles into a run.
type ProfileSource interface {
	ListActiveByCompany(ctx context.Context, companyID string) ([]salaryprofile.SalaryProfile, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	RunPayroll(ctx context.Context, companyID, actorID string, req RunPayrollRequest) (PayrollRunResponse, error)
	GetAllRuns(ctx context.Context, companyID string) ([]PayrollRunResponse, error)
	GetRunByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error)
	GetRunBreakdown(ctx context.Context, companyID, id string) (RunBreakdownResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollRunResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string) (PayrollRunResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (PayrollRunResponse, error)
	GeneratePayslips(ctx context.Context, companyID, runID string) error
	ExportRegister(ctx context.Context, companyID, runID string) ([]byte, string, error)

	GetSettings(ctx context.Context, companyID string) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, companyID string, req UpdateSettingsRequest) (SettingsResponse, error)
	ListTaxSlabs(ctx context.Context, companyID string) ([]TaxSlabResponse, error)
	ReplaceTaxSlabs(ctx context.Context, companyID string, req ReplaceTaxSlabsRequest) ([]TaxSlabResponse, error)
	SeedDefaults(ctx context.Context, companyID string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	settings   SettingsRepository
	cache      *settingsCache
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	rdb        *redis.Client
	components ComponentSource
	profiles   ProfileSource
	pdfDir     string
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	settingsRepo SettingsRepository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	components ComponentSource,
	profiles ProfileSource,
	pdfDir string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		settings:   settingsRepo,
		cache:      newSettingsCache(settingsRepo, rdb, l),
		counter:    counterRepo,
		outbox:     outboxRepo,
		rdb:        rdb,
		components: components,
		profiles:   profiles,
		pdfDir:     pdfDir,
		logger:     l,
	}
}

// RunPayroll computes the whole company for a period in one transaction.
// Either every payslip lands or none does.
func (s *service) RunPayroll(
	ctx context.Context,
	companyID, actorID string,
	req RunPayrollRequest,
) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("run payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("period_start", req.PeriodStart),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}
	periodStart, periodEnd, payDate, err := parseRunDates(req)
	if err != nil {
		return PayrollRunResponse{}, err
	}

	// Serialize concurrent run attempts for the same tenant and period.
	if s.rdb != nil {
		lockKey := runLockKey(companyID, periodStart)
		locked, err := s.rdb.SetNX(ctx, lockKey, actorID, runLockTTL).Result()
		if err != nil {
			s.logger.Error("run payroll acquire lock failed", zap.Error(err))
			return PayrollRunResponse{}, err
		}
		if !locked {
			s.logger.Warn("run payroll lock held by another request",
				zap.String("company_id", companyID),
				zap.String("period_start", req.PeriodStart),
			)
			return PayrollRunResponse{}, payrollerrors.ErrRunInProgress
		}
		defer s.rdb.Del(ctx, lockKey)
	}

	exists, err := s.repo.HasRunForPeriod(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if exists {
		return PayrollRunResponse{}, payrollerrors.ErrRunAlreadyExists
	}

	components, err := s.components.ListActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("run payroll load components failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	profiles, err := s.profiles.ListActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("run payroll load profiles failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	if len(profiles) == 0 {
		return PayrollRunResponse{}, payrollerrors.ErrNoActiveProfiles
	}

	settings, slabs, err := s.cache.Get(ctx, companyID)
	if err != nil {
		s.logger.Error("run payroll load settings failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	if settings == nil {
		s.logger.Warn("run payroll without statutory settings, statutory amounts will be zero",
			zap.String("company_id", companyID),
		)
	}

	refs, err := s.repo.ListEmployeeRefs(ctx, companyID)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	employeeByID := make(map[uuid.UUID]RunEmployee, len(refs))
	for _, ref := range refs {
		employeeByID[ref.ID] = ref
	}

	nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.TypePayrollRun)
	if err != nil {
		s.logger.Error("run payroll generate run number failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("run payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run := &PayrollRun{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		RunNumber:   fmt.Sprintf("PR-%06d", nextVal),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PayDate:     payDate,
		Status:      StatusProcessing,
		CreatedBy:   actorUUID,
	}
	if err := qtx.CreateRun(ctx, run); err != nil {
		s.logger.Error("run payroll create run failed", zap.Error(err))
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	for _, profile := range profiles {
		payslip, err := s.buildPayslip(run, profile, components, settings, slabs, employeeByID)
		if err != nil {
			s.logger.Error("run payroll compute payslip failed",
				zap.String("employee_id", profile.EmployeeID.String()),
				zap.Error(err),
			)
			return PayrollRunResponse{}, err
		}

		if err := qtx.CreatePayslip(ctx, payslip); err != nil {
			s.logger.Error("run payroll persist payslip failed",
				zap.String("employee_id", profile.EmployeeID.String()),
				zap.Error(err),
			)
			return PayrollRunResponse{}, mapRepositoryError(err)
		}

		run.EmployeeCount++
		run.TotalGross += payslip.GrossEarnings
		run.TotalDeductions += payslip.TotalDeductions
		run.TotalEmployerCost += payslip.GrossEarnings + payslip.EmployerPF + payslip.EmployerESI
		run.TotalNet += payslip.NetPay
	}

	run.Status = StatusProcessed
	if err := qtx.UpdateRun(ctx, run); err != nil {
		s.logger.Error("run payroll finalize run failed", zap.Error(err))
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("run payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunResponse{}, err
	}

	s.logger.Info("run payroll success",
		zap.String("request_id", rid),
		zap.String("run_id", run.ID.String()),
		zap.String("run_number", run.RunNumber),
		zap.Int("employee_count", run.EmployeeCount),
		zap.Int64("total_net", run.TotalNet),
	)

	return mapRunToResponse(*run), nil
}

// buildPayslip resolves one profile against the component set and applies
// statutory deductions. Invariants: sum of earning items equals gross, sum of
// deduction items equals total deductions, net = gross - deductions.
func (s *service) buildPayslip(
	run *PayrollRun,
	profile salaryprofile.SalaryProfile,
	components []salarycomponent.SalaryComponent,
	settings *PayrollSettings,
	slabs []TaxSlab,
	employeeByID map[uuid.UUID]RunEmployee,
) (*Payslip, error) {
	resolved, err := salarycomponent.Resolve(components, profile.AmountMap())
	if err != nil {
		return nil, err
	}

	statutory := CalculateStatutory(resolved.Gross, resolved.PFWageBase, settings, slabs)

	payslip := &Payslip{
		ID:                uuid.New(),
		RunID:             run.ID,
		CompanyID:         run.CompanyID,
		EmployeeID:        profile.EmployeeID,
		BankName:          profile.BankName,
		BankAccountNumber: profile.BankAccountNumber,
		PAN:               profile.PAN,
		UAN:               profile.UAN,
		GrossEarnings:     resolved.Gross,
		EmployerPF:        statutory.PFEmployer,
		EmployerESI:       statutory.ESIEmployer,
	}
	if ref, ok := employeeByID[profile.EmployeeID]; ok {
		payslip.EmployeeName = ref.FullName
		payslip.EmployeeCode = ref.EmployeeCode
	}

	for _, line := range resolved.Earnings {
		payslip.LineItems = append(payslip.LineItems, PayslipLineItem{
			ID:        uuid.New(),
			PayslipID: payslip.ID,
			CompanyID: run.CompanyID,
			Kind:      salarycomponent.KindEarning,
			Code:      line.Code,
			Name:      line.Name,
			Amount:    line.Amount,
			SortOrder: line.SortOrder,
		})
	}

	var totalDeductions int64
	for _, line := range resolved.Deductions {
		totalDeductions += line.Amount
		payslip.LineItems = append(payslip.LineItems, PayslipLineItem{
			ID:        uuid.New(),
			PayslipID: payslip.ID,
			CompanyID: run.CompanyID,
			Kind:      salarycomponent.KindDeduction,
			Code:      line.Code,
			Name:      line.Name,
			Amount:    line.Amount,
			SortOrder: line.SortOrder,
		})
	}

	statutoryLines := []struct {
		code, name string
		amount     int64
		sortOrder  int
	}{
		{"PF", "Provident Fund", statutory.PFEmployee, sortOrderPF},
		{"ESI", "Employee State Insurance", statutory.ESIEmployee, sortOrderESI},
		{"TDS", "Tax Deducted at Source", statutory.TDS, sortOrderTDS},
	}
	for _, sl := range statutoryLines {
		if sl.amount == 0 {
			continue
		}
		totalDeductions += sl.amount
		payslip.LineItems = append(payslip.LineItems, PayslipLineItem{
			ID:        uuid.New(),
			PayslipID: payslip.ID,
			CompanyID: run.CompanyID,
			Kind:      salarycomponent.KindDeduction,
			Code:      sl.code,
			Name:      sl.name,
			Amount:    sl.amount,
			SortOrder: sl.sortOrder,
			Statutory: true,
		})
	}

	payslip.TotalDeductions = totalDeductions
	payslip.NetPay = payslip.GrossEarnings - totalDeductions

	return payslip, nil
}

func (s *service) GetAllRuns(ctx context.Context, companyID string) ([]PayrollRunResponse, error) {
	runs, err := s.repo.FindAllRunsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all payroll runs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapRunsToListResponse(runs), nil
}

func (s *service) GetRunByID(ctx context.Context, companyID, id string) (PayrollRunResponse, error) {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get payroll run by id failed", zap.Error(err))
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	return mapRunToResponse(*run), nil
}

func (s *service) GetRunBreakdown(ctx context.Context, companyID, id string) (RunBreakdownResponse, error) {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RunBreakdownResponse{}, mapRepositoryError(err)
	}
	payslips, err := s.repo.FindPayslipsByRun(ctx, companyID, id)
	if err != nil {
		return RunBreakdownResponse{}, mapRepositoryError(err)
	}

	resp := RunBreakdownResponse{Run: mapRunToResponse(*run)}
	for _, p := range payslips {
		resp.Payslips = append(resp.Payslips, mapPayslipToResponse(p))
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	approverUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve payroll run begin tx failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if !isAllowedStatusTransition(run.Status, StatusApproved) {
		s.logger.Warn("approve payroll run rejected",
			zap.String("run_id", id),
			zap.String("status", run.Status),
		)
		return PayrollRunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	run.Status = StatusApproved
	run.ApprovedBy = &approverUUID
	run.ApprovedAt = &now

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PayrollRunApprovedEvent{
			EventType:  "payroll_run_approved",
			RunID:      run.ID.String(),
			CompanyID:  companyID,
			ApprovedBy: actorID,
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollRunResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRunApprovedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve payroll run outbox persist failed",
				zap.String("run_id", id),
				zap.Error(err),
			)
			return PayrollRunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve payroll run commit failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}

	s.logger.Info("approve payroll run success",
		zap.String("request_id", rid),
		zap.String("run_id", id),
		zap.String("approved_by", actorID),
	)

	return mapRunToResponse(*run), nil
}

func (s *service) MarkPaid(ctx context.Context, companyID, actorID, id string) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if !isAllowedStatusTransition(run.Status, StatusPaid) {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	run.Status = StatusPaid
	run.PaidAt = &now

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("mark payroll run paid success", zap.String("run_id", id))

	return mapRunToResponse(*run), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if !isAllowedStatusTransition(run.Status, StatusCancelled) {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	run.Status = StatusCancelled
	run.CancelledAt = &now

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("cancel payroll run success", zap.String("run_id", id))

	return mapRunToResponse(*run), nil
}

// GeneratePayslips renders the PDF for every payslip in an approved run.
// Regeneration is safe: files are overwritten in place.
func (s *service) GeneratePayslips(ctx context.Context, companyID, runID string) error {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, runID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if run.Status != StatusApproved && run.Status != StatusPaid {
		return payrollerrors.ErrRunNotApproved
	}

	payslips, err := s.repo.FindPayslipsByRun(ctx, companyID, runID)
	if err != nil {
		return mapRepositoryError(err)
	}

	dir := filepath.Join(s.pdfDir, companyID, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	now := time.Now().UTC()
	for i := range payslips {
		slip := &payslips[i]

		pdfBytes, err := buildPayslipPDF(run, slip)
		if err != nil {
			s.logger.Error("generate payslip pdf failed",
				zap.String("payslip_id", slip.ID.String()),
				zap.Error(err),
			)
			return err
		}

		path := filepath.Join(dir, slip.ID.String()+".pdf")
		if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
			return err
		}

		slip.PDFPath = &path
		slip.PDFGeneratedAt = &now
		if err := s.repo.UpdatePayslip(ctx, slip); err != nil {
			return mapRepositoryError(err)
		}
	}

	run.PayslipsGeneratedAt = &now
	if err := s.repo.UpdateRun(ctx, run); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("payslips generated",
		zap.String("run_id", runID),
		zap.Int("count", len(payslips)),
	)

	return nil
}

// ExportRegister renders the run as a payroll register workbook. Returns the
// file bytes and a suggested filename.
func (s *service) ExportRegister(ctx context.Context, companyID, runID string) ([]byte, string, error) {
	run, err := s.repo.FindRunByIDAndCompany(ctx, companyID, runID)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}
	payslips, err := s.repo.FindPayslipsByRun(ctx, companyID, runID)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	data, err := buildRegisterXLSX(run, payslips)
	if err != nil {
		s.logger.Error("export payroll register failed",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		return nil, "", err
	}

	filename := fmt.Sprintf("payroll-register-%s.xlsx", run.RunNumber)
	return data, filename, nil
}

func (s *service) GetSettings(ctx context.Context, companyID string) (SettingsResponse, error) {
	settings, err := s.settings.GetByCompany(ctx, companyID)
	if err != nil {
		return SettingsResponse{}, mapSettingsError(err)
	}
	return mapSettingsToResponse(*settings), nil
}

func (s *service) UpdateSettings(ctx context.Context, companyID string, req UpdateSettingsRequest) (SettingsResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.settings.WithTx(tx)

	settings, err := qtx.GetByCompany(ctx, companyID)
	if err != nil {
		return SettingsResponse{}, mapSettingsError(err)
	}

	settings.PFEnabled = req.PFEnabled
	settings.PFEmployeeRate = decimal.NewFromFloat(req.PFEmployeeRate)
	settings.PFEmployerRate = decimal.NewFromFloat(req.PFEmployerRate)
	settings.PFWageCeiling = req.PFWageCeiling
	settings.ESIEnabled = req.ESIEnabled
	settings.ESIEmployeeRate = decimal.NewFromFloat(req.ESIEmployeeRate)
	settings.ESIEmployerRate = decimal.NewFromFloat(req.ESIEmployerRate)
	settings.ESIWageCeiling = req.ESIWageCeiling
	settings.TDSEnabled = req.TDSEnabled

	if err := qtx.Update(ctx, settings); err != nil {
		return SettingsResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SettingsResponse{}, err
	}

	s.cache.Invalidate(ctx, companyID)

	s.logger.Info("update payroll settings success", zap.String("company_id", companyID))

	return mapSettingsToResponse(*settings), nil
}

func (s *service) ListTaxSlabs(ctx context.Context, companyID string) ([]TaxSlabResponse, error) {
	slabs, err := s.settings.ListTaxSlabs(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapSlabsToResponse(slabs), nil
}

func (s *service) ReplaceTaxSlabs(ctx context.Context, companyID string, req ReplaceTaxSlabsRequest) ([]TaxSlabResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}

	slabs, err := slabsFromRequest(companyUUID, req.Slabs)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.settings.WithTx(tx)
	if err := qtx.ReplaceTaxSlabs(ctx, companyID, slabs); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, companyID)

	s.logger.Info("replace tax slabs success",
		zap.String("company_id", companyID),
		zap.Int("slabs", len(slabs)),
	)

	return mapSlabsToResponse(slabs), nil
}

// SeedDefaults provisions statutory settings and the default slab table for
// a new company.
func (s *service) SeedDefaults(ctx context.Context, companyID string) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return payrollerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.settings.WithTx(tx)

	settings := &PayrollSettings{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		PFEnabled:       true,
		PFEmployeeRate:  decimal.NewFromInt(12),
		PFEmployerRate:  decimal.NewFromInt(12),
		PFWageCeiling:   15000,
		ESIEnabled:      true,
		ESIEmployeeRate: decimal.NewFromFloat(0.75),
		ESIEmployerRate: decimal.NewFromFloat(3.25),
		ESIWageCeiling:  21000,
		TDSEnabled:      true,
	}
	if err := qtx.Create(ctx, settings); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.ReplaceTaxSlabs(ctx, companyID, defaultTaxSlabs(companyUUID)); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("seed payroll settings success", zap.String("company_id", companyID))
	return nil
}

func defaultTaxSlabs(companyID uuid.UUID) []TaxSlab {
	cap1 := int64(300000)
	cap2 := int64(700000)
	return []TaxSlab{
		{ID: uuid.New(), CompanyID: companyID, MinAnnual: 0, MaxAnnual: &cap1, Rate: decimal.Zero},
		{ID: uuid.New(), CompanyID: companyID, MinAnnual: 300000, MaxAnnual: &cap2, Rate: decimal.NewFromInt(5)},
		{ID: uuid.New(), CompanyID: companyID, MinAnnual: 700000, Rate: decimal.NewFromInt(10)},
	}
}

// slabsFromRequest validates that the table starts at zero, is contiguous
// and only the last slab is open ended.
func slabsFromRequest(companyID uuid.UUID, reqs []TaxSlabRequest) ([]TaxSlab, error) {
	slabs := make([]TaxSlab, 0, len(reqs))

	var expectedMin int64
	for i, r := range reqs {
		if r.MinAnnual != expectedMin {
			return nil, payrollerrors.ErrInvalidTaxSlabs
		}
		last := i == len(reqs)-1
		if last {
			if r.MaxAnnual != nil && *r.MaxAnnual <= r.MinAnnual {
				return nil, payrollerrors.ErrInvalidTaxSlabs
			}
		} else {
			if r.MaxAnnual == nil || *r.MaxAnnual <= r.MinAnnual {
				return nil, payrollerrors.ErrInvalidTaxSlabs
			}
			expectedMin = *r.MaxAnnual
		}

		slabs = append(slabs, TaxSlab{
			ID:        uuid.New(),
			CompanyID: companyID,
			MinAnnual: r.MinAnnual,
			MaxAnnual: r.MaxAnnual,
			Rate:      decimal.NewFromFloat(r.Rate),
		})
	}

	return slabs, nil
}

func parseRunDates(req RunPayrollRequest) (time.Time, time.Time, time.Time, error) {
	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	if periodStart.After(periodEnd) {
		return time.Time{}, time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	return periodStart, periodEnd, payDate, nil
}

func mapRunToResponse(run PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:                run.ID.String(),
		CompanyID:         run.CompanyID.String(),
		RunNumber:         run.RunNumber,
		PeriodStart:       run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:         run.PeriodEnd.Format("2006-01-02"),
		PayDate:           run.PayDate.Format("2006-01-02"),
		Status:            run.Status,
		EmployeeCount:     run.EmployeeCount,
		TotalGross:        run.TotalGross,
		TotalDeductions:   run.TotalDeductions,
		TotalEmployerCost: run.TotalEmployerCost,
		TotalNet:          run.TotalNet,
		CreatedBy:         run.CreatedBy.String(),
	}

	if run.ApprovedBy != nil {
		v := run.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if run.ApprovedAt != nil {
		v := run.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if run.PaidAt != nil {
		v := run.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if run.CancelledAt != nil {
		v := run.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	if run.PayslipsGeneratedAt != nil {
		v := run.PayslipsGeneratedAt.Format(time.RFC3339)
		resp.PayslipsGeneratedAt = &v
	}

	return resp
}

func mapRunsToListResponse(runs []PayrollRun) []PayrollRunResponse {
	resp := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run)
	}
	return resp
}

func mapPayslipToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:              p.ID.String(),
		EmployeeID:      p.EmployeeID.String(),
		EmployeeName:    p.EmployeeName,
		EmployeeCode:    p.EmployeeCode,
		GrossEarnings:   p.GrossEarnings,
		TotalDeductions: p.TotalDeductions,
		EmployerPF:      p.EmployerPF,
		EmployerESI:     p.EmployerESI,
		NetPay:          p.NetPay,
	}
	for _, item := range p.LineItems {
		resp.LineItems = append(resp.LineItems, PayslipLineItemResponse{
			Kind:      item.Kind,
			Code:      item.Code,
			Name:      item.Name,
			Amount:    item.Amount,
			SortOrder: item.SortOrder,
			Statutory: item.Statutory,
		})
	}
	return resp
}

func mapSettingsToResponse(settings PayrollSettings) SettingsResponse {
	pfEmployee, _ := settings.PFEmployeeRate.Float64()
	pfEmployer, _ := settings.PFEmployerRate.Float64()
	esiEmployee, _ := settings.ESIEmployeeRate.Float64()
	esiEmployer, _ := settings.ESIEmployerRate.Float64()

	return SettingsResponse{
		CompanyID:       settings.CompanyID.String(),
		PFEnabled:       settings.PFEnabled,
		PFEmployeeRate:  pfEmployee,
		PFEmployerRate:  pfEmployer,
		PFWageCeiling:   settings.PFWageCeiling,
		ESIEnabled:      settings.ESIEnabled,
		ESIEmployeeRate: esiEmployee,
		ESIEmployerRate: esiEmployer,
		ESIWageCeiling:  settings.ESIWageCeiling,
		TDSEnabled:      settings.TDSEnabled,
	}
}

func mapSlabsToResponse(slabs []TaxSlab) []TaxSlabResponse {
	resp := make([]TaxSlabResponse, len(slabs))
	for i, slab := range slabs {
		rate, _ := slab.Rate.Float64()
		resp[i] = TaxSlabResponse{
			MinAnnual: slab.MinAnnual,
			MaxAnnual: slab.MaxAnnual,
			Rate:      rate,
		}
	}
	return resp
}
