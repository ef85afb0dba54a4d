package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTrainee   = "TRAINEE"
	CategoryIntern    = "INTERN"
	CategoryProbation = "PROBATION"
	CategoryConfirmed = "CONFIRMED"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_employee_email,unique;index:idx_employee_card,unique"`

	EmployeeCode string `gorm:"type:varchar(20);not null"`
	FullName     string `gorm:"type:varchar(160);not null"`
	Email        string `gorm:"type:varchar(160);not null;index:idx_employee_email,unique"`
	Phone        string `gorm:"type:varchar(20)"`

	Department  string `gorm:"type:varchar(80)"`
	Designation string `gorm:"type:varchar(80)"`

	Category    string    `gorm:"type:varchar(16);not null;default:'PROBATION'"`
	JoiningDate time.Time `gorm:"type:date;not null"`

	// Badge used by the hardware punch readers. Nullable so the partial
	// unique index only bites for employees that actually carry a card.
	CardNumber *string `gorm:"type:varchar(40);index:idx_employee_card,unique"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
