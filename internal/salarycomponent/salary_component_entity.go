package salarycomponent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	KindEarning   = "EARNING"
	KindDeduction = "DEDUCTION"

	CalcFixed      = "FIXED"
	CalcPercentage = "PERCENTAGE"

	// PercentageBaseGross marks a percentage component computed over the
	// resolved gross instead of a single base component.
	PercentageBaseGross = "GROSS"
)

type SalaryComponent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_component_code,unique"`

	Name string `gorm:"type:varchar(120);not null"`
	Code string `gorm:"type:varchar(40);not null;index:idx_component_code,unique"`
	Kind string `gorm:"type:varchar(20);not null"`
	Calc string `gorm:"type:varchar(20);not null;default:'FIXED'"`

	// Only set for Calc=PERCENTAGE: base component code or GROSS.
	PercentageOf    *string          `gorm:"type:varchar(40)"`
	PercentageValue *decimal.Decimal `gorm:"type:numeric(7,4)"`

	Taxable       bool `gorm:"not null;default:true"`
	PFApplicable  bool `gorm:"not null;default:false"`
	ESIApplicable bool `gorm:"not null;default:false"`
	SystemDefined bool `gorm:"not null;default:false"`
	Active        bool `gorm:"not null;default:true"`
	SortOrder     int  `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}
