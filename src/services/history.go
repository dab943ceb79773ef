package services

import (
	"context"
	"math"
	"sort"
	"time"
	"tradeledger/src/clients/quotes"
	"tradeledger/src/models"
	"tradeledger/src/schemas"
	"tradeledger/src/utils"
)

// HistoryBasis selects how holdings are applied across the lookback window.
type HistoryBasis string

const (
	// BasisCurrent broadcasts the query-time holdings across the whole
	// window: a share bought yesterday is shown as if held all along. This is
	// the default, and deliberately cheap.
	BasisCurrent HistoryBasis = "current"
	// BasisAsTraded replays the ledger so each date is valued with the
	// holdings actually open on that date.
	BasisAsTraded HistoryBasis = "as_traded"
)

const DefaultLookback = "1y"

type HistoryServiceI interface {
	PortfolioValueSeries(ctx context.Context, transactions []models.Transaction, rng string, basis HistoryBasis) ([]schemas.ValuePoint, error)
}

// HistoryService synthesizes the portfolio-value time series from historical
// daily closes.
type HistoryService struct {
	quotes    quotes.ServiceI
	positions PositionServiceI
}

func NewHistoryService(quotesClient quotes.ServiceI, positions PositionServiceI) *HistoryService {
	return &HistoryService{quotes: quotesClient, positions: positions}
}

// PortfolioValueSeries sums close*quantity per date over every open ticker.
// A ticker with no close on a given date contributes 0 for that date, and a
// ticker whose whole series cannot be fetched contributes nothing at all;
// neither aborts the series.
func (s *HistoryService) PortfolioValueSeries(ctx context.Context, transactions []models.Transaction, rng string, basis HistoryBasis) ([]schemas.ValuePoint, error) {
	if rng == "" {
		rng = DefaultLookback
	}
	now := time.Now().UTC()
	start, err := utils.RangeStart(now, rng)
	if err != nil {
		return nil, err
	}

	positions := s.positions.Aggregate(transactions)
	closesByTicker := make(map[string]map[string]float64, len(positions))
	for ticker := range positions {
		bars, err := s.quotes.GetDailyHistory(ctx, ticker, start, now)
		if err != nil {
			utils.LoggerFromContext(ctx).WithError(err).WithField("ticker", ticker).
				Warn("no historical series for ticker, skipping")
			continue
		}
		closes := make(map[string]float64, len(bars))
		for _, bar := range bars {
			closes[bar.Date] = bar.Close
		}
		closesByTicker[ticker] = closes
	}

	dates := collectDates(closesByTicker)

	totals := make(map[string]float64, len(dates))
	switch basis {
	case BasisAsTraded:
		replay := newQuantityReplay(transactions)
		for _, date := range dates {
			day, err := time.Parse(utils.ShortDashDateLayout, date)
			if err != nil {
				continue
			}
			held := replay.advanceTo(day)
			var total float64
			for ticker, closes := range closesByTicker {
				if c, ok := closes[date]; ok {
					total += c * float64(held[ticker])
				}
			}
			totals[date] = total
		}
	default:
		for ticker, closes := range closesByTicker {
			qty := float64(positions[ticker].Quantity)
			for date, c := range closes {
				totals[date] += c * qty
			}
		}
	}

	series := make([]schemas.ValuePoint, 0, len(dates))
	for _, date := range dates {
		series = append(series, schemas.ValuePoint{Date: date, TotalValue: totals[date]})
	}
	return series, nil
}

func collectDates(closesByTicker map[string]map[string]float64) []string {
	seen := make(map[string]struct{})
	for _, closes := range closesByTicker {
		for date := range closes {
			seen[date] = struct{}{}
		}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// MaxSeriesPoints caps the density of single-ticker OHLCV responses.
const MaxSeriesPoints = 60

// Downsample resamples a series longer than MaxSeriesPoints down to exactly
// MaxSeriesPoints evenly spaced samples, keeping the first and last points.
func Downsample[T any](points []T) []T {
	n := len(points)
	if n <= MaxSeriesPoints {
		return points
	}
	out := make([]T, MaxSeriesPoints)
	for i := range out {
		idx := int(math.Round(float64(i) * float64(n-1) / float64(MaxSeriesPoints-1)))
		out[i] = points[idx]
	}
	return out
}
