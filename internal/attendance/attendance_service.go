package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/attendance/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/shared/contextutil"
)

// Workday baseline for late detection. TODO: move onto a per-company
// attendance settings row once shift schedules land.
const (
	workdayStartHour   = 9
	workdayStartMinute = 30
	lateGraceMinutes   = 15
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID string, req ClockRequest) (AttendanceRecordResponse, error)
	ClockOut(ctx context.Context, companyID string, req ClockRequest) (AttendanceRecordResponse, error)
	GetDay(ctx context.Context, companyID, date string) ([]AttendanceRecordResponse, error)
	GetEmployeeRange(ctx context.Context, companyID, employeeID, from, to string) ([]AttendanceRecordResponse, error)
	IngestPunch(ctx context.Context, companyID string, req IngestPunchRequest) (AttendanceRecordResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: func() time.Time { return time.Now().UTC() }, logger: l}
}

func (s *service) ClockIn(ctx context.Context, companyID string, req ClockRequest) (AttendanceRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock in requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	day := dateOf(now)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, day)
	if err == nil && existing.ClockIn != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceRecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record := &AttendanceRecord{
		ID:         uuid.New(),
		CompanyID:  cid,
		EmployeeID: employeeID,
		Date:       day,
		ClockIn:    &now,
		Source:     SourceWeb,
	}
	record.IsLate = isLate(now)
	record.Status = statusFor(record.IsLate)

	if err := qtx.CreateRecord(ctx, record); err != nil {
		s.logger.Error("clock in persist failed", zap.Error(err))
		return AttendanceRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceRecordResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Bool("late", record.IsLate),
	)

	return mapRecordToResponse(*record), nil
}

func (s *service) ClockOut(ctx context.Context, companyID string, req ClockRequest) (AttendanceRecordResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceRecordResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceRecordResponse{}, err
	}
	if record.ClockIn == nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if record.ClockOut != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	record.ClockOut = &now
	if err := qtx.UpdateRecord(ctx, record); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return AttendanceRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceRecordResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("worked_minutes", record.WorkedMinutes()),
	)

	return mapRecordToResponse(*record), nil
}

func (s *service) GetDay(ctx context.Context, companyID, date string) ([]AttendanceRecordResponse, error) {
	day, err := parseDate(date, dateOf(s.now()))
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindAllByCompanyAndDate(ctx, companyID, day)
	if err != nil {
		s.logger.Error("get attendance day failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapRecordsToListResponse(records), nil
}

func (s *service) GetEmployeeRange(ctx context.Context, companyID, employeeID, from, to string) ([]AttendanceRecordResponse, error) {
	today := dateOf(s.now())
	fromDate, err := parseDate(from, today.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to, today)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, attendanceerrors.ErrInvalidDate
	}

	records, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID, fromDate, toDate)
	if err != nil {
		s.logger.Error("get attendance range failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapRecordsToListResponse(records), nil
}

// IngestPunch records one hardware punch and folds it into the employee's
// day: the first punch of the day clocks in, every later one moves the clock
// out forward. The punch log row makes redelivery a no-op via its external
// reference.
func (s *service) IngestPunch(ctx context.Context, companyID string, req IngestPunchRequest) (AttendanceRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if strings.TrimSpace(req.CardNumber) == "" || strings.TrimSpace(req.ExternalRef) == "" {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidPunch
	}
	punchedAt, err := time.Parse(time.RFC3339, req.PunchedAt)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidPunch
	}
	punchedAt = punchedAt.UTC()

	employee, err := s.repo.FindEmployeeByCard(ctx, companyID, req.CardNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("punch for unmapped card",
				zap.String("company_id", companyID),
				zap.String("card_number", req.CardNumber),
				zap.String("device_id", req.DeviceID),
			)
			return AttendanceRecordResponse{}, attendanceerrors.ErrUnknownCard
		}
		return AttendanceRecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	punch := &AttendancePunch{
		ID:          uuid.New(),
		CompanyID:   employee.CompanyID,
		EmployeeID:  employee.ID,
		CardNumber:  req.CardNumber,
		DeviceID:    req.DeviceID,
		ExternalRef: req.ExternalRef,
		PunchedAt:   punchedAt,
	}
	if err := qtx.CreatePunch(ctx, punch); err != nil {
		return AttendanceRecordResponse{}, mapRepositoryError(err)
	}

	record, err := s.applyPunch(ctx, qtx, employee, punchedAt)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceRecordResponse{}, err
	}

	s.logger.Info("punch ingested",
		zap.String("request_id", rid),
		zap.String("employee_id", employee.ID.String()),
		zap.String("external_ref", req.ExternalRef),
		zap.Time("punched_at", punchedAt),
	)

	return mapRecordToResponse(*record), nil
}

func (s *service) applyPunch(ctx context.Context, qtx Repository, employee *PunchEmployee, punchedAt time.Time) (*AttendanceRecord, error) {
	day := dateOf(punchedAt)

	record, err := qtx.FindByEmployeeAndDate(ctx, employee.CompanyID.String(), employee.ID.String(), day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		record = &AttendanceRecord{
			ID:         uuid.New(),
			CompanyID:  employee.CompanyID,
			EmployeeID: employee.ID,
			Date:       day,
			ClockIn:    &punchedAt,
			Source:     SourceDevice,
		}
		record.IsLate = isLate(punchedAt)
		record.Status = statusFor(record.IsLate)

		if err := qtx.CreateRecord(ctx, record); err != nil {
			return nil, mapRepositoryError(err)
		}
		return record, nil
	}

	changed := false
	if record.ClockIn == nil || punchedAt.Before(*record.ClockIn) {
		record.ClockIn = &punchedAt
		record.IsLate = isLate(punchedAt)
		record.Status = statusFor(record.IsLate)
		changed = true
	} else if record.ClockOut == nil || punchedAt.After(*record.ClockOut) {
		record.ClockOut = &punchedAt
		changed = true
	}

	if changed {
		if err := qtx.UpdateRecord(ctx, record); err != nil {
			return nil, mapRepositoryError(err)
		}
	}
	return record, nil
}

func isLate(clockIn time.Time) bool {
	cutoff := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(),
		workdayStartHour, workdayStartMinute, 0, 0, clockIn.Location()).
		Add(lateGraceMinutes * time.Minute)
	return clockIn.After(cutoff)
}

func statusFor(late bool) string {
	if late {
		return StatusLate
	}
	return StatusPresent
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return parsed, nil
}

func mapRecordToResponse(record AttendanceRecord) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		ID:            record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		Date:          record.Date.Format("2006-01-02"),
		Status:        record.Status,
		IsLate:        record.IsLate,
		Source:        record.Source,
		WorkedMinutes: record.WorkedMinutes(),
	}
	if record.ClockIn != nil {
		v := record.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if record.ClockOut != nil {
		v := record.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

func mapRecordsToListResponse(records []AttendanceRecord) []AttendanceRecordResponse {
	resp := make([]AttendanceRecordResponse, len(records))
	for i, r := range records {
		resp[i] = mapRecordToResponse(r)
	}
	return resp
}
