package salarycomponent

type CreateSalaryComponentRequest struct {
	Name            string   `json:"name" binding:"required"`
	Code            string   `json:"code" binding:"required"`
	Kind            string   `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
	Calc            string   `json:"calc" binding:"required,oneof=FIXED PERCENTAGE"`
	PercentageOf    *string  `json:"percentage_of"`
	PercentageValue *float64 `json:"percentage_value" binding:"omitempty,gt=0"`
	Taxable         bool     `json:"taxable"`
	PFApplicable    bool     `json:"pf_applicable"`
	ESIApplicable   bool     `json:"esi_applicable"`
	SortOrder       int      `json:"sort_order"`
}

type UpdateSalaryComponentRequest struct {
	Name            string   `json:"name" binding:"required"`
	Code            string   `json:"code" binding:"required"`
	Kind            string   `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
	Calc            string   `json:"calc" binding:"required,oneof=FIXED PERCENTAGE"`
	PercentageOf    *string  `json:"percentage_of"`
	PercentageValue *float64 `json:"percentage_value" binding:"omitempty,gt=0"`
	Taxable         bool     `json:"taxable"`
	PFApplicable    bool     `json:"pf_applicable"`
	ESIApplicable   bool     `json:"esi_applicable"`
	Active          bool     `json:"active"`
	SortOrder       int      `json:"sort_order"`
}

type SalaryComponentResponse struct {
	ID              string   `json:"id"`
	CompanyID       string   `json:"company_id"`
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	Kind            string   `json:"kind"`
	Calc            string   `json:"calc"`
	PercentageOf    *string  `json:"percentage_of,omitempty"`
	PercentageValue *float64 `json:"percentage_value,omitempty"`
	Taxable         bool     `json:"taxable"`
	PFApplicable    bool     `json:"pf_applicable"`
	ESIApplicable   bool     `json:"esi_applicable"`
	SystemDefined   bool     `json:"system_defined"`
	Active          bool     `json:"active"`
	SortOrder       int      `json:"sort_order"`
}
