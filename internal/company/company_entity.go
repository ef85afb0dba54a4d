package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant root. Every other table carries its id.
type Company struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name  string `gorm:"type:varchar(160);not null;uniqueIndex:idx_company_name"`
	Email string `gorm:"type:varchar(160);not null"`
	Phone string `gorm:"type:varchar(20)"`

	AddressLine string `gorm:"type:varchar(240)"`
	City        string `gorm:"type:varchar(80)"`
	State       string `gorm:"type:varchar(80)"`
	Country     string `gorm:"type:varchar(80);default:'India'"`

	GSTIN string `gorm:"type:varchar(20)"`
	PAN   string `gorm:"type:varchar(20)"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
