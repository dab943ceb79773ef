package schemas

// PortfolioDetail is one valued row of GET /api/portfolio_details.
type PortfolioDetail struct {
	Ticker       string  `json:"ticker"`
	Quantity     int64   `json:"quantity"`
	CostBasis    float64 `json:"cost_basis"`
	CurrentPrice float64 `json:"current_price"`
	TotalValue   float64 `json:"total_value"`
	UnrealizedPL float64 `json:"unrealized_pl"`
	PurchaseDate string  `json:"purchase_date"`
	CompanyLogo  string  `json:"company_logo"`
	// PriceUnavailable marks rows whose price could not be resolved; such rows
	// report a zero price instead of failing the whole view.
	PriceUnavailable bool `json:"price_unavailable,omitempty"`
}

// ValuePoint is one sample of the portfolio value time series.
type ValuePoint struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"total_value"`
}
