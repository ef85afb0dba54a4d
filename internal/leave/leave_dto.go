package leave

type CreateLeaveTypeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=80"`

	DaysPerYear    float64 `json:"days_per_year" binding:"omitempty,gt=0"`
	IsMonthlyQuota bool    `json:"is_monthly_quota"`
	MonthlyLimit   float64 `json:"monthly_limit" binding:"omitempty,gt=0"`

	IsPaid              bool    `json:"is_paid"`
	IsCarryForward      bool    `json:"is_carry_forward"`
	MaxCarryForwardDays float64 `json:"max_carry_forward_days" binding:"omitempty,gte=0"`
}

type LeaveTypeResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DaysPerYear         float64 `json:"days_per_year"`
	IsMonthlyQuota      bool    `json:"is_monthly_quota"`
	MonthlyLimit        float64 `json:"monthly_limit"`
	IsPaid              bool    `json:"is_paid"`
	IsCarryForward      bool    `json:"is_carry_forward"`
	MaxCarryForwardDays float64 `json:"max_carry_forward_days"`
	Active              bool    `json:"active"`
}

type UpdatePolicyRequest struct {
	ProbationMonths       int `json:"probation_months" binding:"gte=0,lte=24"`
	MinDaysAdvancePlanned int `json:"min_days_advance_planned" binding:"gte=0,lte=90"`

	ProbationUnpaid        bool `json:"probation_unpaid"`
	UnplannedDefaultUnpaid bool `json:"unplanned_default_unpaid"`
	EmergencyDefaultUnpaid bool `json:"emergency_default_unpaid"`
	AllowNegativeBalance   bool `json:"allow_negative_balance"`
}

type PolicyResponse struct {
	CompanyID             string `json:"company_id"`
	ProbationMonths       int    `json:"probation_months"`
	MinDaysAdvancePlanned int    `json:"min_days_advance_planned"`

	ProbationUnpaid        bool `json:"probation_unpaid"`
	UnplannedDefaultUnpaid bool `json:"unplanned_default_unpaid"`
	EmergencyDefaultUnpaid bool `json:"emergency_default_unpaid"`
	AllowNegativeBalance   bool `json:"allow_negative_balance"`
}

type LeaveBalanceResponse struct {
	LeaveTypeID      string  `json:"leave_type_id"`
	Year             int     `json:"year"`
	TotalDays        float64 `json:"total_days"`
	UsedDays         float64 `json:"used_days"`
	CarryForwardDays float64 `json:"carry_forward_days"`
	Remaining        float64 `json:"remaining"`
}

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=2000"`
	Emergency   bool   `json:"emergency"`
}

type DecisionRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" binding:"max=2000"`
}

type LeaveRequestResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`

	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays float64 `json:"total_days"`
	Reason    string  `json:"reason,omitempty"`

	RequestType        string  `json:"request_type"`
	IsPaid             bool    `json:"is_paid"`
	AutoUnpaidReason   *string `json:"auto_unpaid_reason,omitempty"`
	RequiresHRApproval bool    `json:"requires_hr_approval"`

	ManagerApproved *bool `json:"manager_approved"`
	HRApproved      *bool `json:"hr_approved"`

	Status   string   `json:"status"`
	Warnings []string `json:"warnings,omitempty"`
}
