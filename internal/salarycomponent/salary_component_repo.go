package salarycomponent

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=salary_component_repo.go -destination=mock/salary_component_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryComponent, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryComponent, error)
	FindByCodeAndCompany(ctx context.Context, companyID, code string) (*SalaryComponent, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]SalaryComponent, error)
	Update(ctx context.Context, component *SalaryComponent) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("sort_order ASC, code ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&component, "id = ?", id).Error
	return &component, err
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&component, "code = ?", code).Error
	return &component, err
}

func (r *repository) ListActiveByCompany(ctx context.Context, companyID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("active = ?", true).
		Order("sort_order ASC, code ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) Update(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&SalaryComponent{}, "id = ?", id).Error
}
