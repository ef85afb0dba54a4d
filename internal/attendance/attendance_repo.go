package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRecord(ctx context.Context, record *AttendanceRecord) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceRecord, error)
	FindAllByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]AttendanceRecord, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
	UpdateRecord(ctx context.Context, record *AttendanceRecord) error

	CreatePunch(ctx context.Context, punch *AttendancePunch) error
	FindEmployeeByCard(ctx context.Context, companyID, cardNumber string) (*PunchEmployee, error)
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

func (r *repository) CreateRecord(ctx context.Context, record *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceRecord, error) {
	var record AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&record).Error
	return &record, err
}

func (r *repository) FindAllByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("date = ?", date.Format("2006-01-02")).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) UpdateRecord(ctx context.Context, record *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) CreatePunch(ctx context.Context, punch *AttendancePunch) error {
	return r.db.WithContext(ctx).Create(punch).Error
}

func (r *repository) FindEmployeeByCard(ctx context.Context, companyID, cardNumber string) (*PunchEmployee, error) {
	var employee PunchEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "company_id", "card_number").
		Where("company_id = ?", companyID).
		Where("card_number = ?", cardNumber).
		Where("deleted_at IS NULL").
		Take(&employee).Error
	return &employee, err
}
