package payroll

type RunPayrollRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	PayDate     string `json:"pay_date" binding:"required"`
}

type PayrollRunResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	RunNumber     string `json:"run_number"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	PayDate       string `json:"pay_date"`
	Status        string `json:"status"`
	EmployeeCount int    `json:"employee_count"`

	TotalGross        int64 `json:"total_gross"`
	TotalDeductions   int64 `json:"total_deductions"`
	TotalEmployerCost int64 `json:"total_employer_cost"`
	TotalNet          int64 `json:"total_net"`

	CreatedBy           string  `json:"created_by"`
	ApprovedBy          *string `json:"approved_by,omitempty"`
	ApprovedAt          *string `json:"approved_at,omitempty"`
	PaidAt              *string `json:"paid_at,omitempty"`
	CancelledAt         *string `json:"cancelled_at,omitempty"`
	PayslipsGeneratedAt *string `json:"payslips_generated_at,omitempty"`
}

type PayslipLineItemResponse struct {
	Kind      string `json:"kind"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	SortOrder int    `json:"sort_order"`
	Statutory bool   `json:"statutory"`
}

type PayslipResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`

	GrossEarnings   int64 `json:"gross_earnings"`
	TotalDeductions int64 `json:"total_deductions"`
	EmployerPF      int64 `json:"employer_pf"`
	EmployerESI     int64 `json:"employer_esi"`
	NetPay          int64 `json:"net_pay"`

	LineItems []PayslipLineItemResponse `json:"line_items"`
}

type RunBreakdownResponse struct {
	Run      PayrollRunResponse `json:"run"`
	Payslips []PayslipResponse  `json:"payslips"`
}

type UpdateSettingsRequest struct {
	PFEnabled      bool    `json:"pf_enabled"`
	PFEmployeeRate float64 `json:"pf_employee_rate" binding:"gte=0"`
	PFEmployerRate float64 `json:"pf_employer_rate" binding:"gte=0"`
	PFWageCeiling  int64   `json:"pf_wage_ceiling" binding:"gte=0"`

	ESIEnabled      bool    `json:"esi_enabled"`
	ESIEmployeeRate float64 `json:"esi_employee_rate" binding:"gte=0"`
	ESIEmployerRate float64 `json:"esi_employer_rate" binding:"gte=0"`
	ESIWageCeiling  int64   `json:"esi_wage_ceiling" binding:"gte=0"`

	TDSEnabled bool `json:"tds_enabled"`
}

type SettingsResponse struct {
	CompanyID string `json:"company_id"`

	PFEnabled      bool    `json:"pf_enabled"`
	PFEmployeeRate float64 `json:"pf_employee_rate"`
	PFEmployerRate float64 `json:"pf_employer_rate"`
	PFWageCeiling  int64   `json:"pf_wage_ceiling"`

	ESIEnabled      bool    `json:"esi_enabled"`
	ESIEmployeeRate float64 `json:"esi_employee_rate"`
	ESIEmployerRate float64 `json:"esi_employer_rate"`
	ESIWageCeiling  int64   `json:"esi_wage_ceiling"`

	TDSEnabled bool `json:"tds_enabled"`
}

type TaxSlabRequest struct {
	MinAnnual int64   `json:"min_annual" binding:"gte=0"`
	MaxAnnual *int64  `json:"max_annual"`
	Rate      float64 `json:"rate" binding:"gte=0"`
}

type ReplaceTaxSlabsRequest struct {
	Slabs []TaxSlabRequest `json:"slabs" binding:"required,min=1,dive"`
}

type TaxSlabResponse struct {
	MinAnnual int64   `json:"min_annual"`
	MaxAnnual *int64  `json:"max_annual,omitempty"`
	Rate      float64 `json:"rate"`
}
