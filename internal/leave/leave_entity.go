package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType carries either an annual allocation (DaysPerYear) or a monthly
// quota (IsMonthlyQuota + MonthlyLimit), never both.
type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_leave_type_name,unique"`

	Name string `gorm:"type:varchar(80);not null;index:idx_leave_type_name,unique"`

	DaysPerYear    float64 `gorm:"type:numeric(5,1);not null;default:0"`
	IsMonthlyQuota bool    `gorm:"not null;default:false"`
	MonthlyLimit   float64 `gorm:"type:numeric(4,1);not null;default:0"`

	IsPaid              bool    `gorm:"not null;default:true"`
	IsCarryForward      bool    `gorm:"not null;default:false"`
	MaxCarryForwardDays float64 `gorm:"type:numeric(5,1);not null;default:0"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// AnnualAllocation is the full-year entitlement regardless of quota mode.
func (t *LeaveType) AnnualAllocation() float64 {
	if t.IsMonthlyQuota {
		return t.MonthlyLimit * 12
	}
	return t.DaysPerYear
}

// AccruedDays is the entitlement earned by the end of the given month (1-12).
func (t *LeaveType) AccruedDays(monthsElapsed int) float64 {
	if monthsElapsed <= 0 {
		return 0
	}
	if monthsElapsed > 12 {
		monthsElapsed = 12
	}
	if t.IsMonthlyQuota {
		return t.MonthlyLimit * float64(monthsElapsed)
	}
	return t.DaysPerYear * float64(monthsElapsed) / 12
}

// LeavePolicy is the tenant-wide rulebook the evaluator runs against. One row
// per company.
type LeavePolicy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	ProbationMonths       int `gorm:"not null;default:6"`
	MinDaysAdvancePlanned int `gorm:"not null;default:3"`

	ProbationUnpaid        bool `gorm:"not null;default:true"`
	UnplannedDefaultUnpaid bool `gorm:"not null;default:false"`
	EmergencyDefaultUnpaid bool `gorm:"not null;default:false"`
	AllowNegativeBalance   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}

// LeaveBalance tracks one employee's entitlement for one leave type and year.
// Remaining is always computed, only UsedDays mutates after creation.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_balance_key,unique"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_balance_key,unique"`
	Year        int       `gorm:"not null;index:idx_leave_balance_key,unique"`

	TotalDays        float64 `gorm:"type:numeric(5,1);not null;default:0"`
	UsedDays         float64 `gorm:"type:numeric(5,1);not null;default:0"`
	CarryForwardDays float64 `gorm:"type:numeric(5,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b *LeaveBalance) Remaining() float64 {
	return b.TotalDays - b.UsedDays
}

// LeaveRequest snapshots the evaluator's verdict (request type, paid flag, HR
// gate) at submission time. Gate fields stay nil until the approver acts.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays float64   `gorm:"type:numeric(5,1);not null"`
	Reason    string    `gorm:"type:text"`

	RequestType        string  `gorm:"type:varchar(16);not null"`
	IsPaid             bool    `gorm:"not null"`
	AutoUnpaidReason   *string `gorm:"type:text"`
	RequiresHRApproval bool    `gorm:"not null"`

	ManagerApproved  *bool
	ManagerActorID   *uuid.UUID `gorm:"type:uuid"`
	ManagerDecidedAt *time.Time
	HRApproved       *bool
	HRActorID        *uuid.UUID `gorm:"type:uuid"`
	HRDecidedAt      *time.Time

	Status string `gorm:"type:varchar(16);not null;default:'PENDING';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// RequestEmployee is the slice of the employee record the evaluator needs.
type RequestEmployee struct {
	ID          uuid.UUID
	JoiningDate time.Time
	Category    string
}
