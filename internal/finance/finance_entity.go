package finance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EntryTypeRevenue = "REVENUE"
	EntryTypeExpense = "EXPENSE"
)

// Entry is a single revenue or expense line. Amounts are stored in the
// smallest currency unit, matching the payroll tables.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_finance_company_date"`

	EntryType   string    `gorm:"type:varchar(10);not null"`
	Category    string    `gorm:"type:varchar(80);not null"`
	Description string    `gorm:"type:varchar(240)"`
	Amount      int64     `gorm:"not null"`
	EntryDate   time.Time `gorm:"type:date;not null;index:idx_finance_company_date"`

	RecordedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Entry) TableName() string {
	return "finance_entries"
}

// MonthlySummary aggregates entries for one calendar month.
type MonthlySummary struct {
	Month        string
	TotalRevenue int64
	TotalExpense int64
	ByCategory   []CategoryTotal
}

type CategoryTotal struct {
	EntryType string
	Category  string
	Total     int64
}

func (s MonthlySummary) Net() int64 {
	return s.TotalRevenue - s.TotalExpense
}
