package payroll

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type SettingsRepository interface {
	WithTx(tx *sql.Tx) SettingsRepository
	Create(ctx context.Context, settings *PayrollSettings) error
	GetByCompany(ctx context.Context, companyID string) (*PayrollSettings, error)
	Update(ctx context.Context, settings *PayrollSettings) error
	ListTaxSlabs(ctx context.Context, companyID string) ([]TaxSlab, error)
	ReplaceTaxSlabs(ctx context.Context, companyID string, slabs []TaxSlab) error
}

type settingsRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) WithTx(tx *sql.Tx) SettingsRepository {
	return &settingsRepository{db: r.db, tx: tx}
}

func (r *settingsRepository) Create(ctx context.Context, settings *PayrollSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) GetByCompany(ctx context.Context, companyID string) (*PayrollSettings, error) {
	var settings PayrollSettings
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&settings).Error
	return &settings, err
}

func (r *settingsRepository) Update(ctx context.Context, settings *PayrollSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) ListTaxSlabs(ctx context.Context, companyID string) ([]TaxSlab, error) {
	var slabs []TaxSlab
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("min_annual ASC").
		Find(&slabs).Error
	return slabs, err
}

func (r *settingsRepository) ReplaceTaxSlabs(ctx context.Context, companyID string, slabs []TaxSlab) error {
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&TaxSlab{}).Error; err != nil {
		return err
	}
	if len(slabs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slabs).Error
}
