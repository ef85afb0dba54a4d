package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SourceWeb    = "WEB"
	SourceDevice = "DEVICE"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
)

// AttendanceRecord is one employee-day. One row per employee per date
// (idx_attendance_employee_date); punches and clock calls mutate the same row.
type AttendanceRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_employee_date,unique"`

	Date     time.Time  `gorm:"type:date;not null;index:idx_attendance_employee_date,unique"`
	ClockIn  *time.Time `gorm:"type:timestamptz"`
	ClockOut *time.Time `gorm:"type:timestamptz"`

	Status string `gorm:"type:varchar(16);not null;default:'PRESENT'"`
	IsLate bool   `gorm:"not null;default:false"`
	Source string `gorm:"type:varchar(16);not null;default:'WEB'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// WorkedMinutes is derived, never stored.
func (r *AttendanceRecord) WorkedMinutes() int {
	if r.ClockIn == nil || r.ClockOut == nil {
		return 0
	}
	return int(r.ClockOut.Sub(*r.ClockIn).Minutes())
}

// AttendancePunch is the raw hardware punch log. ExternalRef is the
// device-side punch id; the unique index makes redelivered punches no-ops.
type AttendancePunch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null"`
	CardNumber  string    `gorm:"type:varchar(40);not null"`
	DeviceID    string    `gorm:"type:varchar(80)"`
	ExternalRef string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_punch_external_ref"`
	PunchedAt   time.Time `gorm:"type:timestamptz;not null"`

	CreatedAt time.Time
}

func (AttendancePunch) TableName() string {
	return "attendance_punches"
}

// PunchEmployee is the card-to-employee mapping projection.
type PunchEmployee struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	CardNumber string
}
