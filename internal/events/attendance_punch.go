package events

import "time"

const AttendancePunchTopic = "hr.attendance.punch.v1"

// AttendancePunchEvent is published by the card-reader gateway for every
// hardware punch. ExternalRef is the device-side punch id and makes ingestion
// idempotent.
type AttendancePunchEvent struct {
	EventType   string    `json:"event_type"`
	CompanyID   string    `json:"company_id"`
	CardNumber  string    `json:"card_number"`
	DeviceID    string    `json:"device_id"`
	ExternalRef string    `json:"external_ref"`
	PunchedAt   time.Time `json:"punched_at"`
}
