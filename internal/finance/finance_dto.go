package finance

type CreateEntryRequest struct {
	EntryType   string `json:"entry_type" binding:"required,oneof=REVENUE EXPENSE"`
	Category    string `json:"category" binding:"required,min=2,max=80"`
	Description string `json:"description" binding:"omitempty,max=240"`
	Amount      int64  `json:"amount" binding:"required"`
	EntryDate   string `json:"entry_date" binding:"required"`
}

type EntryResponse struct {
	ID          string `json:"id"`
	EntryType   string `json:"entry_type"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount"`
	EntryDate   string `json:"entry_date"`
	RecordedBy  string `json:"recorded_by"`
}

type CategoryTotalResponse struct {
	EntryType string `json:"entry_type"`
	Category  string `json:"category"`
	Total     int64  `json:"total"`
}

type MonthlySummaryResponse struct {
	Month        string                  `json:"month"`
	TotalRevenue int64                   `json:"total_revenue"`
	TotalExpense int64                   `json:"total_expense"`
	Net          int64                   `json:"net"`
	ByCategory   []CategoryTotalResponse `json:"by_category"`
}
