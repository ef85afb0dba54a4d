package company

type CreateCompanyRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=160"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,max=20"`

	AddressLine string `json:"address_line" binding:"omitempty,max=240"`
	City        string `json:"city" binding:"omitempty,max=80"`
	State       string `json:"state" binding:"omitempty,max=80"`
	Country     string `json:"country" binding:"omitempty,max=80"`

	GSTIN string `json:"gstin" binding:"omitempty,max=20"`
	PAN   string `json:"pan" binding:"omitempty,max=20"`
}

type UpdateCompanyRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=160"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,max=20"`

	AddressLine string `json:"address_line" binding:"omitempty,max=240"`
	City        string `json:"city" binding:"omitempty,max=80"`
	State       string `json:"state" binding:"omitempty,max=80"`
	Country     string `json:"country" binding:"omitempty,max=80"`

	GSTIN string `json:"gstin" binding:"omitempty,max=20"`
	PAN   string `json:"pan" binding:"omitempty,max=20"`

	Active bool `json:"active"`
}

type CompanyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	AddressLine string `json:"address_line,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`

	GSTIN string `json:"gstin,omitempty"`
	PAN   string `json:"pan,omitempty"`

	Active bool `json:"active"`
}
