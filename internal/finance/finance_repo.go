package finance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=finance_repo.go -destination=mock/finance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *Entry) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Entry, error)
	FindAllByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]Entry, error)
	Delete(ctx context.Context, companyID, id string) error
	SummarizeByCategory(ctx context.Context, companyID string, from, to time.Time) ([]CategoryTotal, error)
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

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Entry, error) {
	var entry Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) FindAllByCompanyAndRange(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("entry_date >= ? AND entry_date < ?", from, to).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	result := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Entry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SummarizeByCategory(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&Entry{}).
		Select("entry_type, category, SUM(amount) AS total").
		Scopes(tenant.Scope(companyID)).
		Where("entry_date >= ? AND entry_date < ?", from, to).
		Group("entry_type, category").
		Order("entry_type ASC, category ASC").
		Scan(&totals).Error
	return totals, err
}
