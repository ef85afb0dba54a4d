package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	UpdateRun(ctx context.Context, run *PayrollRun) error
	FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error)
	FindAllRunsByCompany(ctx context.Context, companyID string) ([]PayrollRun, error)
	HasRunForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (bool, error)
	CreatePayslip(ctx context.Context, payslip *Payslip) error
	UpdatePayslip(ctx context.Context, payslip *Payslip) error
	FindPayslipsByRun(ctx context.Context, companyID, runID string) ([]Payslip, error)
	ListEmployeeRefs(ctx context.Context, companyID string) ([]RunEmployee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) FindRunByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) FindAllRunsByCompany(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period_start DESC").
		Find(&runs).Error
	return runs, err
}

// HasRunForPeriod reports whether a non-cancelled run already covers the
// exact period. Cancelled runs do not block a re-run.
func (r *repository) HasRunForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Scopes(tenant.Scope(companyID)).
		Where("period_start = ?", periodStart).
		Where("period_end = ?", periodEnd).
		Where("status <> ?", StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreatePayslip(ctx context.Context, payslip *Payslip) error {
	return r.db.WithContext(ctx).Create(payslip).Error
}

func (r *repository) UpdatePayslip(ctx context.Context, payslip *Payslip) error {
	return r.db.WithContext(ctx).Save(payslip).Error
}

func (r *repository) FindPayslipsByRun(ctx context.Context, companyID, runID string) ([]Payslip, error) {
	var payslips []Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("run_id = ?", runID).
		Order("employee_code ASC").
		Find(&payslips).Error
	return payslips, err
}

func (r *repository) ListEmployeeRefs(ctx context.Context, companyID string) ([]RunEmployee, error) {
	var refs []RunEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, full_name, employee_code").
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Scan(&refs).Error
	return refs, err
}
