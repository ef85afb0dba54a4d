package attendance

type ClockRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type IngestPunchRequest struct {
	CardNumber  string `json:"card_number" binding:"required"`
	DeviceID    string `json:"device_id"`
	ExternalRef string `json:"external_ref" binding:"required"`
	PunchedAt   string `json:"punched_at" binding:"required"`
}

type AttendanceRecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`

	Status        string `json:"status"`
	IsLate        bool   `json:"is_late"`
	Source        string `json:"source"`
	WorkedMinutes int    `json:"worked_minutes"`
}
