package controllers

import (
	"context"

	"tradeledger/src/clients/quotes"
	"tradeledger/src/repositories"
	"tradeledger/src/schemas"
	"tradeledger/src/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxBeginner opens database transactions. *pgxpool.Pool satisfies it; tests
// substitute a fake so trade execution can run without a live database.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type IController interface {
	Buy(ctx context.Context, ticker string, quantity int64) (*schemas.TradeResponse, error)
	Sell(ctx context.Context, ticker string, quantity int64) (*schemas.TradeResponse, error)
	Portfolio(ctx context.Context) (map[string]int64, error)
	PortfolioDetails(ctx context.Context) ([]schemas.PortfolioDetail, error)
	PortfolioHistory(ctx context.Context, rng, basis string) ([]schemas.ValuePoint, error)
	StockQuote(ctx context.Context, ticker string) (*schemas.StockQuote, error)
	StockHistory(ctx context.Context, ticker, rng string) ([]schemas.Bar, error)
	GetPreference(ctx context.Context, userID, key string) (*schemas.PreferenceResponse, error)
	SetPreference(ctx context.Context, userID, key, value string) error
}

// Controller wires the repositories, the valuation services and the
// market-data client together. One instance is built at startup and handed to
// the handlers; nothing hangs off package state.
type Controller struct {
	DB           TxBeginner
	Quotes       quotes.ServiceI
	Transactions repositories.TransactionRepository
	Preferences  repositories.PreferenceRepository
	Positions    services.PositionServiceI
	Valuation    services.ValuationServiceI
	History      services.HistoryServiceI
	Cash         services.CashLedgerI
}

func NewController(db *pgxpool.Pool, quotesClient quotes.ServiceI) *Controller {
	transactions := repositories.NewTransactionRepository(db)
	preferences := repositories.NewPreferenceRepository(db)
	positions := services.NewPositionService()

	return &Controller{
		DB:           db,
		Quotes:       quotesClient,
		Transactions: transactions,
		Preferences:  preferences,
		Positions:    positions,
		Valuation:    services.NewValuationService(quotesClient),
		History:      services.NewHistoryService(quotesClient, positions),
		Cash:         services.NewCashLedger(preferences),
	}
}
