package services

import (
	"context"
	"sort"
	"strings"
	"tradeledger/src/clients/quotes"
	"tradeledger/src/models"
	"tradeledger/src/schemas"
	"tradeledger/src/utils"
)

type ValuationServiceI interface {
	Value(ctx context.Context, positions map[string]*models.Position) ([]schemas.PortfolioDetail, error)
}

// ValuationService combines open positions with live prices into the
// per-ticker unrealized P/L view.
type ValuationService struct {
	quotes quotes.ServiceI
}

func NewValuationService(quotesClient quotes.ServiceI) *ValuationService {
	return &ValuationService{quotes: quotesClient}
}

// Value prices every open position in one batched gateway call. A ticker the
// gateway cannot price is reported with price 0 and PriceUnavailable set
// rather than failing the whole view; a gateway outage degrades every row the
// same way. Rows are ordered by ticker for stable output.
func (s *ValuationService) Value(ctx context.Context, positions map[string]*models.Position) ([]schemas.PortfolioDetail, error) {
	tickers := make([]string, 0, len(positions))
	for ticker := range positions {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	priced, err := s.quotes.GetQuotes(ctx, tickers)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("quote lookup failed, valuing portfolio without prices")
		priced = map[string]*quotes.Quote{}
	}

	details := make([]schemas.PortfolioDetail, 0, len(tickers))
	for _, ticker := range tickers {
		p := positions[ticker]
		detail := schemas.PortfolioDetail{
			Ticker:      ticker,
			Quantity:    p.Quantity,
			CostBasis:   p.CostBasis,
			CompanyLogo: logoDomain(ticker, nil),
		}
		if !p.PurchaseDate.IsZero() {
			detail.PurchaseDate = p.PurchaseDate.UTC().Format(utils.ShortDashDateLayout)
		}

		q := priced[ticker]
		price, ok := 0.0, false
		if q != nil {
			detail.CompanyLogo = logoDomain(ticker, q)
			price, ok = q.ResolvePrice()
		}
		if !ok {
			detail.PriceUnavailable = true
			price = 0
		}

		detail.CurrentPrice = price
		detail.TotalValue = price * float64(p.Quantity)
		detail.UnrealizedPL = detail.TotalValue - p.CostBasis*float64(p.Quantity)
		details = append(details, detail)
	}
	return details, nil
}

// logoDomain derives the bare domain used for the company logo, preferring
// the quote's website field over a ticker-based guess.
func logoDomain(ticker string, q *quotes.Quote) string {
	if q != nil && q.Website != "" {
		domain := q.Website
		domain = strings.TrimPrefix(domain, "https://")
		domain = strings.TrimPrefix(domain, "http://")
		domain = strings.TrimPrefix(domain, "www.")
		if i := strings.IndexByte(domain, '/'); i >= 0 {
			domain = domain[:i]
		}
		if domain != "" {
			return domain
		}
	}
	return strings.ToLower(ticker) + ".com"
}
