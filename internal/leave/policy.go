package leave

import (
	"fmt"
	"time"
)

const (
	RequestTypePlanned   = "PLANNED"
	RequestTypeUnplanned = "UNPLANNED"
	RequestTypeEmergency = "EMERGENCY"
)

const (
	CategoryTrainee   = "TRAINEE"
	CategoryIntern    = "INTERN"
	CategoryProbation = "PROBATION"
	CategoryConfirmed = "CONFIRMED"
)

// EvaluateInput is everything the eligibility evaluator looks at. Balances
// are pre-resolved by the caller so the function stays pure.
type EvaluateInput struct {
	TenureMonths int
	Category     string

	Policy    LeavePolicy
	LeaveType LeaveType

	Today     time.Time
	StartDate time.Time
	TotalDays float64
	Emergency bool

	AvailableBalance float64
	AccruedBalance   float64
}

type EvaluateResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string

	RequestType        string
	IsPaid             bool
	RequiresHRApproval bool
	AutoUnpaidReason   *string
}

// Evaluate classifies a leave request and decides its paid status, HR gate
// and balance eligibility.
//
// Classification: the requester's emergency flag wins outright; otherwise the
// request is planned when the notice period meets the policy minimum and
// unplanned when it does not. Non-planned requests always escalate to HR on
// top of the manager.
//
// An insufficient available balance is a hard error unless the policy allows
// going negative. Exceeding the accrued-to-date balance is only a warning:
// the total may legitimately borrow from credits that accrue later in the
// year.
func Evaluate(in EvaluateInput) EvaluateResult {
	result := EvaluateResult{
		RequestType: classify(in),
		IsPaid:      in.LeaveType.IsPaid,
	}
	result.RequiresHRApproval = result.RequestType != RequestTypePlanned

	if reason := unpaidDowngradeReason(in, result.RequestType); reason != "" {
		result.IsPaid = false
		result.AutoUnpaidReason = &reason
	}

	if in.TotalDays <= 0 {
		result.Errors = append(result.Errors, "requested days must be greater than zero")
	}

	if in.TotalDays > in.AvailableBalance && !in.Policy.AllowNegativeBalance {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"requested %.1f days exceeds available balance of %.1f days",
			in.TotalDays, in.AvailableBalance,
		))
	}
	if in.TotalDays > in.AccruedBalance {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"requested %.1f days exceeds balance accrued to date (%.1f days)",
			in.TotalDays, in.AccruedBalance,
		))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func classify(in EvaluateInput) string {
	if in.Emergency {
		return RequestTypeEmergency
	}
	if noticeDays(in.Today, in.StartDate) >= in.Policy.MinDaysAdvancePlanned {
		return RequestTypePlanned
	}
	return RequestTypeUnplanned
}

func noticeDays(today, start time.Time) int {
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return int(s.Sub(t).Hours() / 24)
}

// unpaidDowngradeReason returns the first applicable reason the paid flag is
// dropped, or "" when the leave type's own paid flag stands.
func unpaidDowngradeReason(in EvaluateInput, requestType string) string {
	if !in.LeaveType.IsPaid {
		return ""
	}
	if in.Policy.ProbationUnpaid && underProbation(in) {
		return "employee has not completed probation; leave is unpaid per policy"
	}
	if requestType == RequestTypeUnplanned && in.Policy.UnplannedDefaultUnpaid {
		return "unplanned leave is unpaid per policy"
	}
	if requestType == RequestTypeEmergency && in.Policy.EmergencyDefaultUnpaid {
		return "emergency leave is unpaid per policy"
	}
	return ""
}

func underProbation(in EvaluateInput) bool {
	switch in.Category {
	case CategoryTrainee, CategoryIntern, CategoryProbation:
		return true
	}
	return in.TenureMonths < in.Policy.ProbationMonths
}
