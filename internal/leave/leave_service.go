package leave

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leaveerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/leave/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/apperror"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreateLeaveType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetLeaveTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)

	GetPolicy(ctx context.Context, companyID string) (PolicyResponse, error)
	UpdatePolicy(ctx context.Context, companyID string, req UpdatePolicyRequest) (PolicyResponse, error)

	GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error)

	CreateRequest(ctx context.Context, companyID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetRequests(ctx context.Context, companyID string) ([]LeaveRequestResponse, error)
	GetRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequestResponse, error)
	GetRequestByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error)
	ManagerDecision(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
	HRDecision(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)

	SeedDefaults(ctx context.Context, companyID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, now: func() time.Time { return time.Now().UTC() }, logger: l}
}

func (s *service) CreateLeaveType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidCompanyID
	}

	annual := req.DaysPerYear > 0
	monthly := req.IsMonthlyQuota && req.MonthlyLimit > 0
	if annual == monthly {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidQuota
	}

	leaveType := &LeaveType{
		ID:                  uuid.New(),
		CompanyID:           cid,
		Name:                req.Name,
		DaysPerYear:         req.DaysPerYear,
		IsMonthlyQuota:      req.IsMonthlyQuota,
		MonthlyLimit:        req.MonthlyLimit,
		IsPaid:              req.IsPaid,
		IsCarryForward:      req.IsCarryForward,
		MaxCarryForwardDays: req.MaxCarryForwardDays,
		Active:              true,
	}

	if err := s.repo.CreateLeaveType(ctx, leaveType); err != nil {
		s.logger.Error("create leave type failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave type success",
		zap.String("company_id", companyID),
		zap.String("leave_type_id", leaveType.ID.String()),
		zap.String("name", leaveType.Name),
	)

	return mapLeaveTypeToResponse(*leaveType), nil
}

func (s *service) GetLeaveTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	leaveTypes, err := s.repo.FindAllLeaveTypesByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get leave types failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveTypeResponse, len(leaveTypes))
	for i, lt := range leaveTypes {
		resp[i] = mapLeaveTypeToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetPolicy(ctx context.Context, companyID string) (PolicyResponse, error) {
	policy, err := s.repo.FindPolicyByCompany(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, mapPolicyError(err)
	}
	return mapPolicyToResponse(*policy), nil
}

func (s *service) UpdatePolicy(ctx context.Context, companyID string, req UpdatePolicyRequest) (PolicyResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	policy, err := qtx.FindPolicyByCompany(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, mapPolicyError(err)
	}

	policy.ProbationMonths = req.ProbationMonths
	policy.MinDaysAdvancePlanned = req.MinDaysAdvancePlanned
	policy.ProbationUnpaid = req.ProbationUnpaid
	policy.UnplannedDefaultUnpaid = req.UnplannedDefaultUnpaid
	policy.EmergencyDefaultUnpaid = req.EmergencyDefaultUnpaid
	policy.AllowNegativeBalance = req.AllowNegativeBalance

	if err := qtx.UpdatePolicy(ctx, policy); err != nil {
		s.logger.Error("update leave policy failed", zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PolicyResponse{}, err
	}

	s.logger.Info("update leave policy success", zap.String("company_id", companyID))

	return mapPolicyToResponse(*policy), nil
}

func (s *service) GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}

	balances, err := s.repo.FindBalancesByEmployee(ctx, companyID, employeeID, year)
	if err != nil {
		s.logger.Error("get leave balances failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = LeaveBalanceResponse{
			LeaveTypeID:      b.LeaveTypeID.String(),
			Year:             b.Year,
			TotalDays:        b.TotalDays,
			UsedDays:         b.UsedDays,
			CarryForwardDays: b.CarryForwardDays,
			Remaining:        b.Remaining(),
		}
	}
	return resp, nil
}

// CreateRequest runs the eligibility evaluator and persists the request with
// the verdict snapshotted. An employee's balance row for the leave type and
// year is created on first use from the type's annual allocation.
func (s *service) CreateRequest(ctx context.Context, companyID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	startDate, endDate, totalDays, err := parseRequestDates(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if req.Emergency && strings.TrimSpace(req.Reason) == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrEmergencyReasonRequired
	}

	leaveType, err := s.repo.FindLeaveTypeByIDAndCompany(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, mapLeaveTypeError(err)
	}
	policy, err := s.repo.FindPolicyByCompany(ctx, companyID)
	if err != nil {
		return LeaveRequestResponse{}, mapPolicyError(err)
	}
	employee, err := s.repo.GetRequestEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	today := s.now()
	year := startDate.Year()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	balance, err := s.ensureBalance(ctx, qtx, cid, employeeID, leaveType, year)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	result := Evaluate(EvaluateInput{
		TenureMonths:     monthsBetween(employee.JoiningDate, today),
		Category:         employee.Category,
		Policy:           *policy,
		LeaveType:        *leaveType,
		Today:            today,
		StartDate:        startDate,
		TotalDays:        totalDays,
		Emergency:        req.Emergency,
		AvailableBalance: balance.Remaining(),
		AccruedBalance:   accruedRemaining(leaveType, balance, today, year),
	})
	if !result.IsValid {
		s.logger.Warn("leave request not eligible",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Strings("errors", result.Errors),
		)
		return LeaveRequestResponse{}, notEligibleError(result)
	}

	request := &LeaveRequest{
		ID:                 uuid.New(),
		CompanyID:          cid,
		EmployeeID:         employeeID,
		LeaveTypeID:        leaveType.ID,
		StartDate:          startDate,
		EndDate:            endDate,
		TotalDays:          totalDays,
		Reason:             req.Reason,
		RequestType:        result.RequestType,
		IsPaid:             result.IsPaid,
		AutoUnpaidReason:   result.AutoUnpaidReason,
		RequiresHRApproval: result.RequiresHRApproval,
		Status:             StatusPending,
	}

	if err := qtx.CreateRequest(ctx, request); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", request.ID.String()),
		zap.String("request_type", request.RequestType),
		zap.Bool("requires_hr_approval", request.RequiresHRApproval),
	)

	resp := mapRequestToResponse(*request)
	resp.Warnings = result.Warnings
	return resp, nil
}

func (s *service) GetRequests(ctx context.Context, companyID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindRequestsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get leave requests failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapRequestsToListResponse(requests), nil
}

func (s *service) GetRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindRequestsByEmployee(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("get employee leave requests failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapRequestsToListResponse(requests), nil
}

func (s *service) GetRequestByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error) {
	request, err := s.repo.FindRequestByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	return mapRequestToResponse(*request), nil
}

func (s *service) ManagerDecision(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	return s.decide(ctx, companyID, actorID, id, req, false)
}

func (s *service) HRDecision(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	return s.decide(ctx, companyID, actorID, id, req, true)
}

// decide records one approval gate and re-derives the request status. When
// the request flips to approved the balance is consumed in the same
// transaction.
func (s *service) decide(ctx context.Context, companyID, actorID, id string, req DecisionRequest, hrGate bool) (LeaveRequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave decision begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindRequestByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}
	if request.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestAlreadyDecided
	}

	now := s.now()
	if hrGate {
		if !request.RequiresHRApproval {
			return LeaveRequestResponse{}, leaveerrors.ErrHRApprovalNotRequired
		}
		request.HRApproved = &req.Approve
		request.HRActorID = &actorUUID
		request.HRDecidedAt = &now
	} else {
		request.ManagerApproved = &req.Approve
		request.ManagerActorID = &actorUUID
		request.ManagerDecidedAt = &now
	}

	request.Status = resolveRequestStatus(request.RequiresHRApproval, request.ManagerApproved, request.HRApproved)

	if request.Status == StatusApproved {
		if err := s.consumeBalance(ctx, qtx, request); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := qtx.UpdateRequest(ctx, request); err != nil {
		s.logger.Error("leave decision persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave decision commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave decision recorded",
		zap.String("leave_request_id", id),
		zap.Bool("hr_gate", hrGate),
		zap.Bool("approve", req.Approve),
		zap.String("status", request.Status),
	)

	return mapRequestToResponse(*request), nil
}

func (s *service) consumeBalance(ctx context.Context, qtx Repository, request *LeaveRequest) error {
	balance, err := qtx.FindBalance(ctx,
		request.CompanyID.String(),
		request.EmployeeID.String(),
		request.LeaveTypeID.String(),
		request.StartDate.Year(),
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrBalanceNotFound
		}
		return err
	}

	balance.UsedDays += request.TotalDays
	if err := qtx.UpdateBalance(ctx, balance); err != nil {
		s.logger.Error("consume leave balance failed",
			zap.String("leave_request_id", request.ID.String()),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	return nil
}

// SeedDefaults provisions the standard leave types and the tenant policy for
// a new company.
func (s *service) SeedDefaults(ctx context.Context, companyID string) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return leaveerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	policy := &LeavePolicy{
		ID:                    uuid.New(),
		CompanyID:             cid,
		ProbationMonths:       6,
		MinDaysAdvancePlanned: 3,
		ProbationUnpaid:       true,
	}
	if err := qtx.CreatePolicy(ctx, policy); err != nil {
		return mapRepositoryError(err)
	}

	defaults := []LeaveType{
		{Name: "Annual Leave", DaysPerYear: 18, IsPaid: true, IsCarryForward: true, MaxCarryForwardDays: 30},
		{Name: "Sick Leave", DaysPerYear: 12, IsPaid: true},
		{Name: "Casual Leave", IsMonthlyQuota: true, MonthlyLimit: 1, IsPaid: true},
	}
	for _, lt := range defaults {
		lt.ID = uuid.New()
		lt.CompanyID = cid
		lt.Active = true
		if err := qtx.CreateLeaveType(ctx, &lt); err != nil {
			return mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("seed leave defaults success", zap.String("company_id", companyID))
	return nil
}

// ensureBalance returns the employee's balance row for the leave type and
// year, creating it from the annual allocation on first use.
func (s *service) ensureBalance(
	ctx context.Context,
	qtx Repository,
	companyID, employeeID uuid.UUID,
	leaveType *LeaveType,
	year int,
) (*LeaveBalance, error) {
	balance, err := qtx.FindBalance(ctx, companyID.String(), employeeID.String(), leaveType.ID.String(), year)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance = &LeaveBalance{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		LeaveTypeID: leaveType.ID,
		Year:        year,
		TotalDays:   leaveType.AnnualAllocation(),
	}
	if err := qtx.CreateBalance(ctx, balance); err != nil {
		return nil, mapRepositoryError(err)
	}
	return balance, nil
}

// accruedRemaining is the accrued-to-date entitlement minus what is already
// used, measured at today within the balance year.
func accruedRemaining(leaveType *LeaveType, balance *LeaveBalance, today time.Time, year int) float64 {
	var monthsElapsed int
	switch {
	case today.Year() > year:
		monthsElapsed = 12
	case today.Year() == year:
		monthsElapsed = int(today.Month())
	}
	return leaveType.AccruedDays(monthsElapsed) + balance.CarryForwardDays - balance.UsedDays
}

func notEligibleError(result EvaluateResult) error {
	return apperror.New(
		apperror.CodeInvalidInput,
		"Leave request is not eligible: "+strings.Join(result.Errors, "; "),
		http.StatusUnprocessableEntity,
	)
}

func parseRequestDates(start, end string) (time.Time, time.Time, float64, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidDateRange
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidDateRange
	}

	totalDays := endDate.Sub(startDate).Hours()/24 + 1
	return startDate, endDate, totalDays, nil
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func mapLeaveTypeToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                  lt.ID.String(),
		Name:                lt.Name,
		DaysPerYear:         lt.DaysPerYear,
		IsMonthlyQuota:      lt.IsMonthlyQuota,
		MonthlyLimit:        lt.MonthlyLimit,
		IsPaid:              lt.IsPaid,
		IsCarryForward:      lt.IsCarryForward,
		MaxCarryForwardDays: lt.MaxCarryForwardDays,
		Active:              lt.Active,
	}
}

func mapPolicyToResponse(policy LeavePolicy) PolicyResponse {
	return PolicyResponse{
		CompanyID:              policy.CompanyID.String(),
		ProbationMonths:        policy.ProbationMonths,
		MinDaysAdvancePlanned:  policy.MinDaysAdvancePlanned,
		ProbationUnpaid:        policy.ProbationUnpaid,
		UnplannedDefaultUnpaid: policy.UnplannedDefaultUnpaid,
		EmergencyDefaultUnpaid: policy.EmergencyDefaultUnpaid,
		AllowNegativeBalance:   policy.AllowNegativeBalance,
	}
}

func mapRequestToResponse(request LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:                 request.ID.String(),
		EmployeeID:         request.EmployeeID.String(),
		LeaveTypeID:        request.LeaveTypeID.String(),
		StartDate:          request.StartDate.Format("2006-01-02"),
		EndDate:            request.EndDate.Format("2006-01-02"),
		TotalDays:          request.TotalDays,
		Reason:             request.Reason,
		RequestType:        request.RequestType,
		IsPaid:             request.IsPaid,
		AutoUnpaidReason:   request.AutoUnpaidReason,
		RequiresHRApproval: request.RequiresHRApproval,
		ManagerApproved:    request.ManagerApproved,
		HRApproved:         request.HRApproved,
		Status:             request.Status,
	}
}

func mapRequestsToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapRequestToResponse(r)
	}
	return resp
}
