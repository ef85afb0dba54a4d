package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/attendance"
	attendanceerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/attendance/errors"
)

type fakeAttendanceRepo struct {
	records  map[string]*attendance.AttendanceRecord
	punches  map[string]*attendance.AttendancePunch
	employee *attendance.PunchEmployee
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: map[string]*attendance.AttendanceRecord{},
		punches: map[string]*attendance.AttendancePunch{},
	}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepo) CreateRecord(ctx context.Context, record *attendance.AttendanceRecord) error {
	cp := *record
	f.records[recordKey(record.EmployeeID.String(), record.Date)] = &cp
	return nil
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	r, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAttendanceRepo) FindAllByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, r := range f.records {
		if r.Date.Equal(date) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, r := range f.records {
		if r.EmployeeID.String() == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) UpdateRecord(ctx context.Context, record *attendance.AttendanceRecord) error {
	cp := *record
	f.records[recordKey(record.EmployeeID.String(), record.Date)] = &cp
	return nil
}

func (f *fakeAttendanceRepo) CreatePunch(ctx context.Context, punch *attendance.AttendancePunch) error {
	if _, ok := f.punches[punch.ExternalRef]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_punch_external_ref"}
	}
	cp := *punch
	f.punches[punch.ExternalRef] = &cp
	return nil
}

func (f *fakeAttendanceRepo) FindEmployeeByCard(ctx context.Context, companyID, cardNumber string) (*attendance.PunchEmployee, error) {
	if f.employee == nil || f.employee.CardNumber != cardNumber {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.employee
	return &cp, nil
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

type attendanceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	repo       *fakeAttendanceRepo
	service    attendance.Service
	employeeID uuid.UUID
}

func setupAttendanceTest(t *testing.T) *attendanceDeps {
	db, sqlMock, _ := sqlmock.New()

	repo := newFakeAttendanceRepo()
	employeeID := uuid.New()
	repo.employee = &attendance.PunchEmployee{
		ID:         employeeID,
		CompanyID:  uuid.New(),
		CardNumber: "CARD-42",
	}

	return &attendanceDeps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       repo,
		service:    attendance.NewService(db, repo),
		employeeID: employeeID,
	}
}

func TestAttendanceService_Clocking(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("clock in then out", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		req := attendance.ClockRequest{EmployeeID: deps.employeeID.String()}

		expectTx(t, deps.sqlMock, true)
		in, err := deps.service.ClockIn(ctx, companyID, req)
		assert.NoError(t, err)
		assert.NotNil(t, in.ClockIn)
		assert.Nil(t, in.ClockOut)
		assert.Equal(t, attendance.SourceWeb, in.Source)

		_, err = deps.service.ClockIn(ctx, companyID, req)
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)

		expectTx(t, deps.sqlMock, true)
		out, err := deps.service.ClockOut(ctx, companyID, req)
		assert.NoError(t, err)
		assert.NotNil(t, out.ClockOut)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.ClockOut(ctx, companyID, req)
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	})

	t.Run("clock out without clock in", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.ClockOut(ctx, companyID, attendance.ClockRequest{
			EmployeeID: deps.employeeID.String(),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	})
}

func TestAttendanceService_IngestPunch(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	punchAt := func(hour, minute int) string {
		return time.Date(2026, 8, 20, hour, minute, 0, 0, time.UTC).Format(time.RFC3339)
	}

	t.Run("first punch clocks in on time", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			DeviceID:    "gate-1",
			ExternalRef: "dev-1",
			PunchedAt:   punchAt(9, 20),
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsLate)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, attendance.SourceDevice, resp.Source)
		assert.NotNil(t, resp.ClockIn)
		assert.Nil(t, resp.ClockOut)
	})

	t.Run("punch after grace window is late", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			ExternalRef: "dev-2",
			PunchedAt:   punchAt(10, 0),
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsLate)
		assert.Equal(t, attendance.StatusLate, resp.Status)
	})

	t.Run("second punch of the day clocks out", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		_, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			ExternalRef: "dev-3",
			PunchedAt:   punchAt(9, 0),
		})
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			ExternalRef: "dev-4",
			PunchedAt:   punchAt(18, 0),
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.ClockOut)
		assert.Equal(t, 9*60, resp.WorkedMinutes)
	})

	t.Run("later punch extends the clock out", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		refs := []struct {
			ref  string
			hour int
		}{{"dev-5", 9}, {"dev-6", 13}, {"dev-7", 19}}
		for _, p := range refs {
			expectTx(t, deps.sqlMock, true)
			_, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
				CardNumber:  "CARD-42",
				ExternalRef: p.ref,
				PunchedAt:   punchAt(p.hour, 0),
			})
			assert.NoError(t, err)
		}

		record := deps.repo.records[recordKey(deps.employeeID.String(), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))]
		assert.Equal(t, 9, record.ClockIn.Hour())
		assert.Equal(t, 19, record.ClockOut.Hour())
	})

	t.Run("duplicate external ref is rejected", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		_, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			ExternalRef: "dev-8",
			PunchedAt:   punchAt(9, 0),
		})
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			ExternalRef: "dev-8",
			PunchedAt:   punchAt(9, 5),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicatePunch)
	})

	t.Run("unmapped card is rejected", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		_, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-99",
			ExternalRef: "dev-9",
			PunchedAt:   punchAt(9, 0),
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrUnknownCard)
	})

	t.Run("garbled timestamp is rejected", func(t *testing.T) {
		deps := setupAttendanceTest(t)
		defer deps.db.Close()

		_, err := deps.service.IngestPunch(ctx, companyID, attendance.IngestPunchRequest{
			CardNumber:  "CARD-42",
			ExternalRef: "dev-10",
			PunchedAt:   "20-08-2026 09:00",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPunch)
	})
}
