package events

import "time"

const PayrollRunApprovedTopic = "hr.payroll.run.approved.v1"

// PayrollRunApprovedEvent triggers asynchronous payslip PDF generation for
// every payslip in the run.
type PayrollRunApprovedEvent struct {
	EventType  string    `json:"event_type"`
	RunID      string    `json:"run_id"`
	CompanyID  string    `json:"company_id"`
	ApprovedBy string    `json:"approved_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
