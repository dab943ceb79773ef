package schemas

// TradeRequest is the body of POST /api/buy and /api/sell.
type TradeRequest struct {
	Ticker   string `json:"ticker"`
	Quantity int64  `json:"quantity"`
}

// TradeResponse reports the executed trade, including the price resolved at
// execution time and the cash balance after the ledger update.
type TradeResponse struct {
	TransactionID int64   `json:"transaction_id"`
	Ticker        string  `json:"ticker"`
	Quantity      int64   `json:"quantity"`
	Type          string  `json:"type"`
	Price         float64 `json:"price"`
	Total         float64 `json:"total"`
	Balance       float64 `json:"balance"`
}
