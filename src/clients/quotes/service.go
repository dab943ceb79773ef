package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"tradeledger/src/config"
	"tradeledger/src/utils"
	redis_utils "tradeledger/src/utils/redis"
	"tradeledger/src/utils/requests"

	"github.com/sethvargo/go-retry"
)

var (
	ErrNoQuote  = errors.New("quotes: no result for ticker")
	ErrNoSeries = errors.New("quotes: no historical series for ticker")
)

const (
	quoteTTL   = 60 * time.Second
	historyTTL = 10 * time.Minute
)

type ServiceI interface {
	GetQuote(ctx context.Context, ticker string) (*Quote, error)
	GetQuotes(ctx context.Context, tickers []string) (map[string]*Quote, error)
	GetDailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]Bar, error)
}

// ServiceClient talks to the market-data gateway's quote and chart endpoints.
// Results are cached in-process, and in Redis when a handler is provided, so
// portfolio reads do not hammer the upstream.
type ServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	Token   string

	quoteCache   *utils.TTLCache[*Quote]
	historyCache *utils.TTLCache[[]Bar]
	redis        *redis_utils.RedisHandler
}

// NewClient creates a new gateway client. redisHandler may be nil.
func NewClient(cfg *config.Config, redisHandler *redis_utils.RedisHandler) *ServiceClient {
	return &ServiceClient{
		API:          requests.NewExternalAPIService(8 * time.Second),
		BaseURL:      cfg.ExternalClients.Quotes.BaseURL,
		Token:        cfg.ExternalClients.Quotes.APIKey,
		quoteCache:   utils.NewTTLCache[*Quote](quoteTTL),
		historyCache: utils.NewTTLCache[[]Bar](historyTTL),
		redis:        redisHandler,
	}
}

// getWithRetry performs a GET with one constant-backoff retry on transport
// errors and upstream 5xx responses.
func (c *ServiceClient) getWithRetry(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	var body []byte
	backoff := retry.WithMaxRetries(1, retry.NewConstant(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.API.Get(ctx, endpoint, c.Token, params)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("upstream returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("upstream returned %s", resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}

// GetQuotes fetches quotes for several tickers in one batched request.
// Tickers the upstream does not know are simply absent from the result map.
func (c *ServiceClient) GetQuotes(ctx context.Context, tickers []string) (map[string]*Quote, error) {
	out := make(map[string]*Quote, len(tickers))
	var missing []string
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if q, ok := c.cachedQuote(ctx, t); ok {
			out[t] = q
		} else {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	endpoint := fmt.Sprintf("%s/v7/finance/quote", c.BaseURL)
	params := url.Values{}
	params.Add("symbols", strings.Join(missing, ","))

	body, err := c.getWithRetry(ctx, endpoint, params)
	if err != nil {
		// cache hits are still worth returning; the unresolved tickers stay
		// absent, like any other ticker the upstream cannot price
		if len(out) > 0 {
			utils.LoggerFromContext(ctx).WithError(err).
				Warn("quote fetch failed, serving cached quotes only")
			return out, nil
		}
		return nil, err
	}

	var parsed quoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	for _, r := range parsed.QuoteResponse.Result {
		q := r.toQuote()
		out[q.Symbol] = q
		c.storeQuote(ctx, q)
	}
	return out, nil
}

// GetQuote fetches a single ticker's quote.
func (c *ServiceClient) GetQuote(ctx context.Context, ticker string) (*Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	all, err := c.GetQuotes(ctx, []string{ticker})
	if err != nil {
		return nil, err
	}
	q, ok := all[ticker]
	if !ok {
		return nil, ErrNoQuote
	}
	return q, nil
}

// GetDailyHistory fetches the daily OHLCV series for a ticker between start
// and end. Days where the upstream reports no close are dropped.
func (c *ServiceClient) GetDailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]Bar, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	cacheKey := fmt.Sprintf("history:%s:%d:%d", ticker, start.Unix(), end.Unix())
	if bars, ok := c.cachedHistory(ctx, cacheKey); ok {
		return bars, nil
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.BaseURL, ticker)
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("period1", fmt.Sprintf("%d", start.Unix()))
	params.Add("period2", fmt.Sprintf("%d", end.Unix()))

	body, err := c.getWithRetry(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoSeries
	}

	r := parsed.Chart.Result[0]
	q := r.Indicators.Quote[0]
	bars := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		bar := Bar{
			Date:  time.Unix(ts, 0).UTC().Format(utils.ShortDashDateLayout),
			Close: *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			bar.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			bar.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			bar.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			bar.Volume = *q.Volume[i]
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, ErrNoSeries
	}

	c.historyCache.Set(cacheKey, bars)
	if c.redis != nil {
		_ = c.redis.Set(ctx, cacheKey, bars, historyTTL)
	}
	return bars, nil
}

func (c *ServiceClient) cachedQuote(ctx context.Context, ticker string) (*Quote, bool) {
	if q, ok := c.quoteCache.Get(ticker); ok {
		return q, true
	}
	if c.redis != nil {
		var q Quote
		if err := c.redis.Get(ctx, "quote:"+ticker, &q); err == nil {
			c.quoteCache.Set(ticker, &q)
			return &q, true
		}
	}
	return nil, false
}

func (c *ServiceClient) storeQuote(ctx context.Context, q *Quote) {
	c.quoteCache.Set(q.Symbol, q)
	if c.redis != nil {
		_ = c.redis.Set(ctx, "quote:"+q.Symbol, q, quoteTTL)
	}
}

func (c *ServiceClient) cachedHistory(ctx context.Context, key string) ([]Bar, bool) {
	if bars, ok := c.historyCache.Get(key); ok {
		return bars, true
	}
	if c.redis != nil {
		var bars []Bar
		if err := c.redis.Get(ctx, key, &bars); err == nil && len(bars) > 0 {
			c.historyCache.Set(key, bars)
			return bars, true
		}
	}
	return nil, false
}
