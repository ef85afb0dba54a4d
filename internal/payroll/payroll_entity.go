package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollRun is one computation of a company's payroll for a period. Amounts
// are stored in the smallest currency unit to avoid floating point error.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_run_company_period,unique"`
	RunNumber string    `gorm:"type:varchar(20);not null"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_run_company_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_run_company_period,unique"`
	PayDate     time.Time `gorm:"type:date;not null"`

	Status        string `gorm:"type:varchar(20);not null;default:'PROCESSING';index"`
	EmployeeCount int    `gorm:"not null;default:0"`

	TotalGross        int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions   int64 `gorm:"type:bigint;not null;default:0"`
	TotalEmployerCost int64 `gorm:"type:bigint;not null;default:0"`
	TotalNet          int64 `gorm:"type:bigint;not null;default:0"`

	CreatedBy           uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy          *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt          *time.Time
	PaidAt              *time.Time
	CancelledAt         *time.Time
	PayslipsGeneratedAt *time.Time

	Payslips []Payslip `gorm:"foreignKey:RunID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// Payslip snapshots one employee's pay for a run. Identity and bank fields
// are copied at computation time so later profile edits never change an
// already computed slip.
type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_run_employee,unique"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_run_employee,unique"`

	EmployeeName      string `gorm:"type:varchar(160);not null"`
	EmployeeCode      string `gorm:"type:varchar(40);not null"`
	BankName          string `gorm:"type:varchar(120)"`
	BankAccountNumber string `gorm:"type:varchar(40)"`
	PAN               string `gorm:"type:varchar(20)"`
	UAN               string `gorm:"type:varchar(20)"`

	GrossEarnings   int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64 `gorm:"type:bigint;not null;default:0"`
	EmployerPF      int64 `gorm:"type:bigint;not null;default:0"`
	EmployerESI     int64 `gorm:"type:bigint;not null;default:0"`
	NetPay          int64 `gorm:"type:bigint;not null;default:0"`

	PDFPath        *string
	PDFGeneratedAt *time.Time

	LineItems []PayslipLineItem `gorm:"foreignKey:PayslipID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

type PayslipLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayslipID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Kind      string `gorm:"type:varchar(20);not null"`
	Code      string `gorm:"type:varchar(40);not null"`
	Name      string `gorm:"type:varchar(120);not null"`
	Amount    int64  `gorm:"type:bigint;not null;default:0"`
	SortOrder int    `gorm:"not null;default:0"`
	Statutory bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayslipLineItem) TableName() string {
	return "payslip_line_items"
}

// PayrollSettings holds a company's statutory configuration. Rates are
// percentages, ceilings are in the smallest currency unit.
type PayrollSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	PFEnabled      bool            `gorm:"not null;default:true"`
	PFEmployeeRate decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0"`
	PFEmployerRate decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0"`
	PFWageCeiling  int64           `gorm:"type:bigint;not null;default:0"`

	ESIEnabled      bool            `gorm:"not null;default:true"`
	ESIEmployeeRate decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0"`
	ESIEmployerRate decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0"`
	ESIWageCeiling  int64           `gorm:"type:bigint;not null;default:0"`

	TDSEnabled bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollSettings) TableName() string {
	return "payroll_settings"
}

// TaxSlab is one bracket of a company's progressive TDS table over annual
// income. MaxAnnual nil means the slab is open ended.
type TaxSlab struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	MinAnnual int64           `gorm:"type:bigint;not null"`
	MaxAnnual *int64          `gorm:"type:bigint"`
	Rate      decimal.Decimal `gorm:"type:numeric(7,4);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaxSlab) TableName() string {
	return "tax_slabs"
}

// RunEmployee is a read-only projection of the employees table used to
// snapshot identity fields onto payslips.
type RunEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	EmployeeCode string    `gorm:"column:employee_code"`
}

func (RunEmployee) TableName() string {
	return "employees"
}
