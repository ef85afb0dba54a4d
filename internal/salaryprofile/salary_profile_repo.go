package salaryprofile

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=salary_profile_repo.go -destination=mock/salary_profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, profile *SalaryProfile) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryProfile, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*SalaryProfile, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryProfile, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]SalaryProfile, error)
	DeactivateByEmployee(ctx context.Context, companyID, employeeID string) error
	ListActiveComponentCodes(ctx context.Context, companyID string) ([]string, error)
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

func (r *repository) Create(ctx context.Context, profile *SalaryProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryProfile, error) {
	var profile SalaryProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Amounts").
		First(&profile, "id = ?", id).Error
	return &profile, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*SalaryProfile, error) {
	var profile SalaryProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Amounts").
		Where("employee_id = ?", employeeID).
		Where("active = ?", true).
		First(&profile).Error
	return &profile, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryProfile, error) {
	var profiles []SalaryProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Amounts").
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) ListActiveByCompany(ctx context.Context, companyID string) ([]SalaryProfile, error) {
	var profiles []SalaryProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Amounts").
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) DeactivateByEmployee(ctx context.Context, companyID, employeeID string) error {
	return r.db.WithContext(ctx).
		Model(&SalaryProfile{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("active = ?", true).
		Update("active", false).Error
}

func (r *repository) ListActiveComponentCodes(ctx context.Context, companyID string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Table("salary_components").
		Select("code").
		Where("company_id = ?", companyID).
		Where("active = ?", true).
		Where("deleted_at IS NULL").
		Scan(&codes).Error
	return codes, err
}
