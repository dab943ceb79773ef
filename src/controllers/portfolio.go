package controllers

import (
	"context"

	"tradeledger/src/schemas"
	"tradeledger/src/services"
	"tradeledger/src/utils"
)

// Portfolio returns the net quantity per open ticker.
func (c *Controller) Portfolio(ctx context.Context) (map[string]int64, error) {
	transactions, err := c.Transactions.GetAll(ctx)
	if err != nil {
		return nil, utils.PersistenceError("could not read transaction ledger")
	}

	positions := c.Positions.Aggregate(transactions)
	out := make(map[string]int64, len(positions))
	for ticker, p := range positions {
		out[ticker] = p.Quantity
	}
	return out, nil
}

// PortfolioDetails returns the fully valued per-ticker view.
func (c *Controller) PortfolioDetails(ctx context.Context) ([]schemas.PortfolioDetail, error) {
	transactions, err := c.Transactions.GetAll(ctx)
	if err != nil {
		return nil, utils.PersistenceError("could not read transaction ledger")
	}

	details, err := c.Valuation.Value(ctx, c.Positions.Aggregate(transactions))
	if err != nil {
		return nil, utils.NewHTTPError(500, utils.KindUpstream, "could not value portfolio")
	}
	return details, nil
}

// PortfolioHistory returns the portfolio value time series for the given
// lookback range. basis selects between the default current-holdings
// broadcast and the as-traded replay.
func (c *Controller) PortfolioHistory(ctx context.Context, rng, basis string) ([]schemas.ValuePoint, error) {
	historyBasis := services.BasisCurrent
	switch basis {
	case "", string(services.BasisCurrent):
	case string(services.BasisAsTraded):
		historyBasis = services.BasisAsTraded
	default:
		return nil, utils.ValidationError("basis must be \"current\" or \"as_traded\"")
	}

	transactions, err := c.Transactions.GetAll(ctx)
	if err != nil {
		return nil, utils.PersistenceError("could not read transaction ledger")
	}

	series, err := c.History.PortfolioValueSeries(ctx, transactions, rng, historyBasis)
	if err != nil {
		return nil, utils.ValidationError(err.Error())
	}
	return series, nil
}
