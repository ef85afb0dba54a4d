package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/messaging/kafka"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/payroll"
	payrollerrors "github.com/webflowdev33/hr-haven-space-sub000/internal/payroll/errors"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salarycomponent"
	"github.com/webflowdev33/hr-haven-space-sub000/internal/salaryprofile"
)

type fakeRepo struct {
	runs      map[string]*payroll.PayrollRun
	payslips  []*payroll.Payslip
	hasRun    bool
	employees []payroll.RunEmployee

	createRunErr     error
	createPayslipErr error
	updateRunErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{runs: map[string]*payroll.PayrollRun{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeRepo) CreateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createRunErr != nil {
		return f.createRunErr
	}
	cp := *run
	f.runs[run.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) UpdateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.updateRunErr != nil {
		return f.updateRunErr
	}
	cp := *run
	f.runs[run.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, payrollerrors.ErrRunNotFound
	}
	cp := *run
	return &cp, nil
}

func (f *fakeRepo) FindAllRunsByCompany(ctx context.Context, companyID string) ([]payroll.PayrollRun, error) {
	var out []payroll.PayrollRun
	for _, run := range f.runs {
		out = append(out, *run)
	}
	return out, nil
}

func (f *fakeRepo) HasRunForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (bool, error) {
	return f.hasRun, nil
}

func (f *fakeRepo) CreatePayslip(ctx context.Context, payslip *payroll.Payslip) error {
	if f.createPayslipErr != nil {
		return f.createPayslipErr
	}
	cp := *payslip
	f.payslips = append(f.payslips, &cp)
	return nil
}

func (f *fakeRepo) UpdatePayslip(ctx context.Context, payslip *payroll.Payslip) error {
	return nil
}

func (f *fakeRepo) FindPayslipsByRun(ctx context.Context, companyID, runID string) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range f.payslips {
		if p.RunID.String() == runID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListEmployeeRefs(ctx context.Context, companyID string) ([]payroll.RunEmployee, error) {
	return f.employees, nil
}

type fakeSettingsRepo struct {
	settings *payroll.PayrollSettings
	slabs    []payroll.TaxSlab
}

func (f *fakeSettingsRepo) WithTx(tx *sql.Tx) payroll.SettingsRepository { return f }

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *payroll.PayrollSettings) error {
	f.settings = settings
	return nil
}

func (f *fakeSettingsRepo) GetByCompany(ctx context.Context, companyID string) (*payroll.PayrollSettings, error) {
	if f.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *payroll.PayrollSettings) error {
	f.settings = settings
	return nil
}

func (f *fakeSettingsRepo) ListTaxSlabs(ctx context.Context, companyID string) ([]payroll.TaxSlab, error) {
	return f.slabs, nil
}

func (f *fakeSettingsRepo) ReplaceTaxSlabs(ctx context.Context, companyID string, slabs []payroll.TaxSlab) error {
	f.slabs = slabs
	return nil
}

type fakeCounter struct{ next int64 }

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type fakeComponents struct{ components []salarycomponent.SalaryComponent }

func (f *fakeComponents) ListActiveByCompany(ctx context.Context, companyID string) ([]salarycomponent.SalaryComponent, error) {
	return f.components, nil
}

type fakeProfiles struct{ profiles []salaryprofile.SalaryProfile }

func (f *fakeProfiles) ListActiveByCompany(ctx context.Context, companyID string) ([]salaryprofile.SalaryProfile, error) {
	return f.profiles, nil
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

type runDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *fakeRepo
	settings *fakeSettingsRepo
	outbox   *fakeOutbox
	service  payroll.Service
}

func setupRunTest(t *testing.T, employeeID uuid.UUID) *runDeps {
	db, sqlMock, _ := sqlmock.New()

	hraBase := "BASIC"
	hraPct := decimal.NewFromInt(40)
	components := []salarycomponent.SalaryComponent{
		{
			Name: "Basic", Code: "BASIC",
			Kind: salarycomponent.KindEarning, Calc: salarycomponent.CalcFixed,
			PFApplicable: true, ESIApplicable: true, Active: true, SortOrder: 1,
		},
		{
			Name: "House Rent Allowance", Code: "HRA",
			Kind: salarycomponent.KindEarning, Calc: salarycomponent.CalcPercentage,
			PercentageOf: &hraBase, PercentageValue: &hraPct,
			ESIApplicable: true, Active: true, SortOrder: 2,
		},
	}

	profiles := []salaryprofile.SalaryProfile{
		{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Active:     true,
			BankName:   "HDFC",
			Amounts: []salaryprofile.ProfileAmount{
				{ComponentCode: "BASIC", Amount: 10000},
			},
		},
	}

	repo := newFakeRepo()
	repo.employees = []payroll.RunEmployee{
		{ID: employeeID, FullName: "Asha Rao", EmployeeCode: "EMP-000001"},
	}

	cap1 := int64(300000)
	settingsRepo := &fakeSettingsRepo{
		settings: &payroll.PayrollSettings{
			PFEnabled:       true,
			PFEmployeeRate:  decimal.NewFromInt(12),
			PFEmployerRate:  decimal.NewFromInt(12),
			PFWageCeiling:   15000,
			ESIEnabled:      true,
			ESIEmployeeRate: decimal.NewFromFloat(0.75),
			ESIEmployerRate: decimal.NewFromFloat(3.25),
			ESIWageCeiling:  21000,
			TDSEnabled:      true,
		},
		slabs: []payroll.TaxSlab{
			{MinAnnual: 0, MaxAnnual: &cap1, Rate: decimal.Zero},
			{MinAnnual: 300000, Rate: decimal.NewFromInt(5)},
		},
	}

	outbox := &fakeOutbox{}

	svc := payroll.NewService(
		db, repo, settingsRepo, &fakeCounter{}, outbox, nil,
		&fakeComponents{components: components},
		&fakeProfiles{profiles: profiles},
		t.TempDir(),
	)

	return &runDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     repo,
		settings: settingsRepo,
		outbox:   outbox,
		service:  svc,
	}
}

func TestPayrollService_RunPayroll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	req := payroll.RunPayrollRequest{
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
		PayDate:     "2026-09-01",
	}

	t.Run("success - payslip honors totals invariants", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.RunPayroll(ctx, companyID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusProcessed, resp.Status)
		assert.Equal(t, "PR-000001", resp.RunNumber)
		assert.Equal(t, 1, resp.EmployeeCount)

		assert.Len(t, deps.repo.payslips, 1)
		slip := deps.repo.payslips[0]

		// BASIC 10000 + HRA 40% = 14000 gross.
		assert.Equal(t, int64(14000), slip.GrossEarnings)
		assert.Equal(t, "Asha Rao", slip.EmployeeName)
		assert.Equal(t, "EMP-000001", slip.EmployeeCode)

		var earnings, deductions int64
		for _, item := range slip.LineItems {
			switch item.Kind {
			case salarycomponent.KindEarning:
				earnings += item.Amount
				assert.Less(t, item.SortOrder, 100)
			case salarycomponent.KindDeduction:
				deductions += item.Amount
				if item.Statutory {
					assert.GreaterOrEqual(t, item.SortOrder, 100)
				}
			}
		}
		assert.Equal(t, slip.GrossEarnings, earnings)
		assert.Equal(t, slip.TotalDeductions, deductions)
		assert.Equal(t, slip.GrossEarnings-slip.TotalDeductions, slip.NetPay)

		assert.Equal(t, resp.TotalGross, slip.GrossEarnings)
		assert.Equal(t, resp.TotalNet, slip.NetPay)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("statutory amounts match configuration", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.RunPayroll(ctx, companyID, actorID, req)
		assert.NoError(t, err)

		slip := deps.repo.payslips[0]
		byCode := map[string]int64{}
		for _, item := range slip.LineItems {
			byCode[item.Code] = item.Amount
		}

		// PF: 12% of pf wage base 10000. ESI: 0.75% of gross 14000.
		// TDS: annual 168000 sits in the zero bracket.
		assert.Equal(t, int64(1200), byCode["PF"])
		assert.Equal(t, int64(105), byCode["ESI"])
		assert.NotContains(t, byCode, "TDS")
	})

	t.Run("existing run for period is rejected", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		deps.repo.hasRun = true

		_, err := deps.service.RunPayroll(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, payrollerrors.ErrRunAlreadyExists)
		assert.Empty(t, deps.repo.payslips)
	})

	t.Run("no active profiles is rejected without a run row", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		deps.service = payroll.NewService(
			deps.db, deps.repo, deps.settings, &fakeCounter{}, deps.outbox, nil,
			&fakeComponents{}, &fakeProfiles{}, t.TempDir(),
		)

		_, err := deps.service.RunPayroll(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, payrollerrors.ErrNoActiveProfiles)
		assert.Empty(t, deps.repo.runs)
	})

	t.Run("payslip failure rolls the whole run back", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		deps.repo.createPayslipErr = errors.New("db error")

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.RunPayroll(ctx, companyID, actorID, req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid period is rejected", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		_, err := deps.service.RunPayroll(ctx, companyID, actorID, payroll.RunPayrollRequest{
			PeriodStart: "2026-08-31",
			PeriodEnd:   "2026-08-01",
			PayDate:     "2026-09-01",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}

func TestPayrollService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	runReq := payroll.RunPayrollRequest{
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
		PayDate:     "2026-09-01",
	}

	t.Run("processed run approves and queues payslip generation", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.RunPayroll(ctx, companyID, actorID, runReq)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		approved, err := deps.service.Approve(ctx, companyID, actorID, resp.ID)

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusApproved, approved.Status)
		assert.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, actorID, *approved.ApprovedBy)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, "payroll_run_approved", deps.outbox.events[0].EventType)
	})

	t.Run("approving an approved run is rejected", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.RunPayroll(ctx, companyID, actorID, runReq)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		_, err = deps.service.Approve(ctx, companyID, actorID, resp.ID)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.Approve(ctx, companyID, actorID, resp.ID)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("cancel after approval is rejected", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.RunPayroll(ctx, companyID, actorID, runReq)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		_, err = deps.service.Approve(ctx, companyID, actorID, resp.ID)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.Cancel(ctx, companyID, actorID, resp.ID)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("paid is terminal", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.RunPayroll(ctx, companyID, actorID, runReq)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		_, err = deps.service.Approve(ctx, companyID, actorID, resp.ID)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		paid, err := deps.service.MarkPaid(ctx, companyID, actorID, resp.ID)
		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, paid.Status)

		expectTx(t, deps.sqlMock, false)
		_, err = deps.service.Cancel(ctx, companyID, actorID, resp.ID)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})
}

func TestPayrollService_ReplaceTaxSlabs(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("valid contiguous table", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		max1 := int64(300000)
		resp, err := deps.service.ReplaceTaxSlabs(ctx, companyID, payroll.ReplaceTaxSlabsRequest{
			Slabs: []payroll.TaxSlabRequest{
				{MinAnnual: 0, MaxAnnual: &max1, Rate: 0},
				{MinAnnual: 300000, Rate: 10},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("gap in the table is rejected", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		max1 := int64(300000)
		_, err := deps.service.ReplaceTaxSlabs(ctx, companyID, payroll.ReplaceTaxSlabsRequest{
			Slabs: []payroll.TaxSlabRequest{
				{MinAnnual: 0, MaxAnnual: &max1, Rate: 0},
				{MinAnnual: 400000, Rate: 10},
			},
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidTaxSlabs)
	})

	t.Run("table not starting at zero is rejected", func(t *testing.T) {
		deps := setupRunTest(t, employeeID)
		defer deps.db.Close()

		_, err := deps.service.ReplaceTaxSlabs(ctx, companyID, payroll.ReplaceTaxSlabsRequest{
			Slabs: []payroll.TaxSlabRequest{
				{MinAnnual: 100000, Rate: 10},
			},
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidTaxSlabs)
	})
}
