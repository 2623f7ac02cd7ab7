package core

// ExtractedSummary is the parse result attached to a completed statement.
type ExtractedSummary struct {
	TransactionCount int      `json:"transactionCount"`
	DateStart        string   `json:"dateStart"`
	DateEnd          string   `json:"dateEnd"`
	TotalIncome      float64  `json:"totalIncome"`
	TotalExpenses    float64  `json:"totalExpenses"`
	Categories       []string `json:"categories"`
}

// CategorySummary aggregates one category bucket for display.
type CategorySummary struct {
	Name  string
	Count int
	Total float64
}

// Overview is a compact dashboard summary of the whole ledger.
type Overview struct {
	TotalIncome      float64
	TotalExpenses    float64
	TransactionCount int
	ByCategory       []CategorySummary
}
