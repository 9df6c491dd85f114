package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"fairvalue/backend-go/internal/config"
)

// QuoteInfo is the flattened info record for one symbol. No field is
// guaranteed by the upstream contract, so optional ones are pointers and the
// rest zero-value when absent.
type QuoteInfo struct {
	Symbol             string   `json:"symbol"`
	ShortName          string   `json:"short_name"`
	CurrentPrice       float64  `json:"current_price"`
	RegularMarketPrice float64  `json:"regular_market_price"`
	ForwardEPS         float64  `json:"forward_eps"`
	TrailingEPS        float64  `json:"trailing_eps"`
	TargetMeanPrice    float64  `json:"target_mean_price"`
	Beta               *float64 `json:"beta"`
	EBITDA             float64  `json:"ebitda"`
	TotalDebt          float64  `json:"total_debt"`
	TotalCash          float64  `json:"total_cash"`
	SharesOutstanding  *float64 `json:"shares_outstanding"`
	Currency           string   `json:"currency"`
}

// HasPrice reports whether the record carries a usable price, from either the
// primary currentPrice field or the regularMarketPrice fallback.
func (q QuoteInfo) HasPrice() bool {
	return q.CurrentPrice > 0 || q.RegularMarketPrice > 0
}

// Price returns the usable price, preferring currentPrice.
func (q QuoteInfo) Price() float64 {
	if q.CurrentPrice > 0 {
		return q.CurrentPrice
	}
	return q.RegularMarketPrice
}

// QuoteSource is the external data source contract consumed by the resolver.
type QuoteSource interface {
	Info(ctx context.Context, symbol string) (QuoteInfo, error)
}

// YahooClient reads the quoteSummary endpoint of the Yahoo Finance JSON API.
type YahooClient struct {
	baseURL string
	hc      *http.Client
	cache   Cache
	ttl     time.Duration
	log     zerolog.Logger
}

func NewYahooClient(cfg config.Config, cache Cache, log zerolog.Logger) *YahooClient {
	return &YahooClient{
		baseURL: cfg.YahooBaseURL,
		hc: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
		cache: cache,
		ttl:   cfg.CacheTTLQuote,
		log:   log,
	}
}

// Yahoo wraps every numeric field as {"raw": n, "fmt": "..."}; only raw is
// consumed here. A nil Raw means the field was absent or null.
type yahooNum struct {
	Raw *float64 `json:"raw"`
}

func (n yahooNum) or(def float64) float64 {
	if n.Raw == nil {
		return def
	}
	return *n.Raw
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				Symbol             string   `json:"symbol"`
				ShortName          string   `json:"shortName"`
				Currency           string   `json:"currency"`
				RegularMarketPrice yahooNum `json:"regularMarketPrice"`
			} `json:"price"`
			FinancialData struct {
				CurrentPrice    yahooNum `json:"currentPrice"`
				TargetMeanPrice yahooNum `json:"targetMeanPrice"`
				EBITDA          yahooNum `json:"ebitda"`
				TotalDebt       yahooNum `json:"totalDebt"`
				TotalCash       yahooNum `json:"totalCash"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				ForwardEPS        yahooNum `json:"forwardEps"`
				TrailingEPS       yahooNum `json:"trailingEps"`
				Beta              yahooNum `json:"beta"`
				SharesOutstanding yahooNum `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Info fetches the info record for one symbol. Recently fetched symbols are
// served from the cache.
func (c *YahooClient) Info(ctx context.Context, symbol string) (QuoteInfo, error) {
	key := "quote:v1:" + symbol
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			var cached QuoteInfo
			if err := UnmarshalCache(b, &cached); err == nil {
				return cached, nil
			}
		}
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL,
		url.PathEscape(symbol),
		url.QueryEscape("price,financialData,defaultKeyStatistics"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return QuoteInfo{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return QuoteInfo{}, fmt.Errorf("quote summary %s: %w", symbol, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return QuoteInfo{}, fmt.Errorf("quote summary %s: %s", symbol, res.Status)
	}

	var payload quoteSummaryResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return QuoteInfo{}, fmt.Errorf("quote summary %s: %w", symbol, err)
	}
	if payload.QuoteSummary.Error != nil {
		return QuoteInfo{}, fmt.Errorf("quote summary %s: %s", symbol, payload.QuoteSummary.Error.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return QuoteInfo{}, fmt.Errorf("quote summary %s: empty result", symbol)
	}

	r := payload.QuoteSummary.Result[0]
	info := QuoteInfo{
		Symbol:             r.Price.Symbol,
		ShortName:          r.Price.ShortName,
		CurrentPrice:       r.FinancialData.CurrentPrice.or(0),
		RegularMarketPrice: r.Price.RegularMarketPrice.or(0),
		ForwardEPS:         r.DefaultKeyStatistics.ForwardEPS.or(0),
		TrailingEPS:        r.DefaultKeyStatistics.TrailingEPS.or(0),
		TargetMeanPrice:    r.FinancialData.TargetMeanPrice.or(0),
		Beta:               r.DefaultKeyStatistics.Beta.Raw,
		EBITDA:             r.FinancialData.EBITDA.or(0),
		TotalDebt:          r.FinancialData.TotalDebt.or(0),
		TotalCash:          r.FinancialData.TotalCash.or(0),
		SharesOutstanding:  r.DefaultKeyStatistics.SharesOutstanding.Raw,
		Currency:           r.Price.Currency,
	}

	if c.cache != nil {
		if b, err := MarshalCache(info); err == nil {
			_ = c.cache.Set(ctx, key, b, c.ttl)
		}
	}
	return info, nil
}

// Ping checks transport-level reachability of the upstream host.
func (c *YahooClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}
