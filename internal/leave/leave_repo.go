package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/webflowdev33/hr-haven-space-sub000/internal/tenant"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateLeaveType(ctx context.Context, leaveType *LeaveType) error
	FindLeaveTypeByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error)
	FindAllLeaveTypesByCompany(ctx context.Context, companyID string) ([]LeaveType, error)

	CreatePolicy(ctx context.Context, policy *LeavePolicy) error
	FindPolicyByCompany(ctx context.Context, companyID string) (*LeavePolicy, error)
	UpdatePolicy(ctx context.Context, policy *LeavePolicy) error

	CreateBalance(ctx context.Context, balance *LeaveBalance) error
	FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindBalancesByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	UpdateBalance(ctx context.Context, balance *LeaveBalance) error

	CreateRequest(ctx context.Context, request *LeaveRequest) error
	FindRequestByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	FindRequestsByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error)
	FindRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error)
	UpdateRequest(ctx context.Context, request *LeaveRequest) error

	GetRequestEmployee(ctx context.Context, companyID, employeeID string) (*RequestEmployee, error)
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

func (r *repository) CreateLeaveType(ctx context.Context, leaveType *LeaveType) error {
	return r.db.WithContext(ctx).Create(leaveType).Error
}

func (r *repository) FindLeaveTypeByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var leaveType LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&leaveType, "id = ?", id).Error
	return &leaveType, err
}

func (r *repository) FindAllLeaveTypesByCompany(ctx context.Context, companyID string) ([]LeaveType, error) {
	var leaveTypes []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&leaveTypes).Error
	return leaveTypes, err
}

func (r *repository) CreatePolicy(ctx context.Context, policy *LeavePolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *repository) FindPolicyByCompany(ctx context.Context, companyID string) (*LeavePolicy, error) {
	var policy LeavePolicy
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&policy).Error
	return &policy, err
}

func (r *repository) UpdatePolicy(ctx context.Context, policy *LeavePolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *repository) CreateBalance(ctx context.Context, balance *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(balance).Error
}

func (r *repository) FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var balance LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&balance).Error
	return &balance, err
}

func (r *repository) FindBalancesByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) UpdateBalance(ctx context.Context, balance *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(balance).Error
}

func (r *repository) CreateRequest(ctx context.Context, request *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindRequestByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var request LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&request, "id = ?", id).Error
	return &request, err
}

func (r *repository) FindRequestsByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindRequestsByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateRequest(ctx context.Context, request *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) GetRequestEmployee(ctx context.Context, companyID, employeeID string) (*RequestEmployee, error) {
	var employee RequestEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "joining_date", "category").
		Where("company_id = ?", companyID).
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&employee).Error
	return &employee, err
}
