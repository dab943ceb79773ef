package controllers

import (
	"context"
	"strings"

	"tradeledger/src/models"
	"tradeledger/src/schemas"
	"tradeledger/src/utils"
)

// Buy resolves the current price and executes the purchase: the cash debit
// and the ledger insert commit as one unit.
func (c *Controller) Buy(ctx context.Context, ticker string, quantity int64) (*schemas.TradeResponse, error) {
	return c.executeTrade(ctx, ticker, quantity, models.TransactionBuy)
}

// Sell resolves the current price and executes the sale, crediting the
// proceeds.
func (c *Controller) Sell(ctx context.Context, ticker string, quantity int64) (*schemas.TradeResponse, error) {
	return c.executeTrade(ctx, ticker, quantity, models.TransactionSell)
}

func (c *Controller) executeTrade(ctx context.Context, ticker string, quantity int64, txType models.TransactionType) (*schemas.TradeResponse, error) {
	logger := utils.LoggerFromContext(ctx)

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, utils.ValidationError("ticker is required")
	}
	if quantity <= 0 {
		return nil, utils.ValidationError("quantity must be a positive integer")
	}

	// The price lookup happens before any database transaction is opened so
	// the balance row is never locked while upstream I/O is in flight.
	quote, err := c.Quotes.GetQuote(ctx, ticker)
	if err != nil {
		return nil, utils.NewHTTPError(500, utils.KindUpstream, "could not resolve a price for "+ticker)
	}
	price, ok := quote.ResolvePrice()
	if !ok {
		return nil, utils.NewHTTPError(500, utils.KindUpstream, "could not resolve a price for "+ticker)
	}

	if txType == models.TransactionSell {
		c.warnOnOversell(ctx, ticker, quantity)
	}

	total := price * float64(quantity)
	delta := -total
	if txType == models.TransactionSell {
		delta = total
	}

	dbTx, err := c.DB.Begin(ctx)
	if err != nil {
		return nil, utils.PersistenceError("could not start transaction")
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	balance, err := c.Cash.ApplyTrade(ctx, dbTx, delta)
	if err != nil {
		logger.WithError(err).Error("cash ledger update failed")
		return nil, utils.PersistenceError("could not update cash balance")
	}

	transaction := &models.Transaction{
		Ticker:          ticker,
		Quantity:        quantity,
		TransactionType: txType,
		Price:           price,
	}
	if err := c.Transactions.Create(ctx, transaction, dbTx); err != nil {
		logger.WithError(err).Error("transaction insert failed")
		return nil, utils.PersistenceError("could not record transaction")
	}

	if err := dbTx.Commit(ctx); err != nil {
		logger.WithError(err).Error("trade commit failed")
		return nil, utils.PersistenceError("could not commit trade")
	}

	logger.WithFields(map[string]interface{}{
		"ticker":   ticker,
		"type":     txType,
		"quantity": quantity,
		"price":    price,
	}).Info("trade executed")

	return &schemas.TradeResponse{
		TransactionID: transaction.ID,
		Ticker:        ticker,
		Quantity:      quantity,
		Type:          string(txType),
		Price:         price,
		Total:         total,
		Balance:       balance,
	}, nil
}

// warnOnOversell logs when a sell exceeds the currently held quantity. The
// trade is not rejected: negative positions are allowed to surface in the
// portfolio rather than being silently clamped.
func (c *Controller) warnOnOversell(ctx context.Context, ticker string, quantity int64) {
	transactions, err := c.Transactions.GetAll(ctx)
	if err != nil {
		return
	}
	held := int64(0)
	if p, ok := c.Positions.Aggregate(transactions)[ticker]; ok {
		held = p.Quantity
	}
	if quantity > held {
		utils.LoggerFromContext(ctx).WithFields(map[string]interface{}{
			"ticker": ticker,
			"held":   held,
			"sell":   quantity,
		}).Warn("sell exceeds held quantity, position will go negative")
	}
}
