package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=160"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
	Department  string `json:"department" binding:"omitempty,max=80"`
	Designation string `json:"designation" binding:"omitempty,max=80"`
	Category    string `json:"category" binding:"required,oneof=TRAINEE INTERN PROBATION CONFIRMED"`
	JoiningDate string `json:"joining_date" binding:"required"`
	CardNumber  string `json:"card_number" binding:"omitempty,max=40"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=160"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
	Department  string `json:"department" binding:"omitempty,max=80"`
	Designation string `json:"designation" binding:"omitempty,max=80"`
	Category    string `json:"category" binding:"required,oneof=TRAINEE INTERN PROBATION CONFIRMED"`
	CardNumber  string `json:"card_number" binding:"omitempty,max=40"`
	Active      bool   `json:"active"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	Department   string  `json:"department,omitempty"`
	Designation  string  `json:"designation,omitempty"`
	Category     string  `json:"category"`
	JoiningDate  string  `json:"joining_date"`
	CardNumber   *string `json:"card_number,omitempty"`
	Active       bool    `json:"active"`
}
