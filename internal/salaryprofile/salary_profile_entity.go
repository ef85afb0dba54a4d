package salaryprofile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalaryProfile pins an employee's component amounts and payout identifiers.
// At most one profile per employee is active (partial unique index
// uq_salary_profile_active); creating a new one supersedes the previous.
type SalaryProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	EffectiveFrom time.Time `gorm:"type:date;not null"`
	Active        bool      `gorm:"not null;default:true"`

	BankName          string `gorm:"type:varchar(120)"`
	BankAccountNumber string `gorm:"type:varchar(40)"`
	BankIFSC          string `gorm:"type:varchar(20)"`
	PAN               string `gorm:"type:varchar(20)"`
	PFNumber          string `gorm:"type:varchar(40)"`
	UAN               string `gorm:"type:varchar(20)"`
	ESINumber         string `gorm:"type:varchar(20)"`

	Amounts []ProfileAmount `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SalaryProfile) TableName() string {
	return "salary_profiles"
}

type ProfileAmount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileID     uuid.UUID `gorm:"type:uuid;not null;index:idx_profile_amount_code,unique"`
	ComponentCode string    `gorm:"type:varchar(40);not null;index:idx_profile_amount_code,unique"`
	Amount        int64     `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProfileAmount) TableName() string {
	return "salary_profile_amounts"
}

// AmountMap flattens the amount rows into the override map the payroll
// resolver consumes.
func (p *SalaryProfile) AmountMap() map[string]int64 {
	amounts := make(map[string]int64, len(p.Amounts))
	for _, a := range p.Amounts {
		amounts[a.ComponentCode] = a.Amount
	}
	return amounts
}
