package salaryprofile

type CreateSalaryProfileRequest struct {
	EmployeeID    string           `json:"employee_id" binding:"required,uuid"`
	EffectiveFrom string           `json:"effective_from" binding:"required"`
	Amounts       map[string]int64 `json:"amounts" binding:"required"`

	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	PAN               string `json:"pan"`
	PFNumber          string `json:"pf_number"`
	UAN               string `json:"uan"`
	ESINumber         string `json:"esi_number"`
}

type SalaryProfileResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	EmployeeID    string           `json:"employee_id"`
	EffectiveFrom string           `json:"effective_from"`
	Active        bool             `json:"active"`
	Amounts       map[string]int64 `json:"amounts"`

	BankName          string `json:"bank_name,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankIFSC          string `json:"bank_ifsc,omitempty"`
	PAN               string `json:"pan,omitempty"`
	PFNumber          string `json:"pf_number,omitempty"`
	UAN               string `json:"uan,omitempty"`
	ESINumber         string `json:"esi_number,omitempty"`
}
