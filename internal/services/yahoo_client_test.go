package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairvalue/backend-go/internal/config"
	"fairvalue/backend-go/internal/logging"
)

const quoteSummaryFixture = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "symbol": "2330.TW",
        "shortName": "TSMC",
        "currency": "TWD",
        "regularMarketPrice": {"raw": 579.0, "fmt": "579.00"}
      },
      "financialData": {
        "currentPrice": {"raw": 580.0, "fmt": "580.00"},
        "targetMeanPrice": {"raw": 650.0, "fmt": "650.00"},
        "ebitda": {"raw": 1500000000000, "fmt": "1.5T"},
        "totalDebt": {"raw": 900000000000, "fmt": "900B"},
        "totalCash": {"raw": 1300000000000, "fmt": "1.3T"}
      },
      "defaultKeyStatistics": {
        "forwardEps": {"raw": 36.5, "fmt": "36.50"},
        "trailingEps": {"raw": 32.3, "fmt": "32.30"},
        "beta": {"raw": 1.1, "fmt": "1.10"},
        "sharesOutstanding": {"raw": 25930000000, "fmt": "25.93B"}
      }
    }],
    "error": null
  }
}`

const quoteSummarySparseFixture = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "symbol": "NVO",
        "currency": "USD",
        "regularMarketPrice": {"raw": 101.2}
      },
      "financialData": {},
      "defaultKeyStatistics": {}
    }],
    "error": null
  }
}`

const quoteSummaryErrorFixture = `{
  "quoteSummary": {
    "result": null,
    "error": {"code": "Not Found", "description": "Quote not found for ticker symbol"}
  }
}`

func newTestClient(t *testing.T, handler http.Handler, cache Cache) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Config{
		YahooBaseURL:    srv.URL,
		UpstreamTimeout: 2 * time.Second,
		CacheTTLQuote:   time.Minute,
	}
	return NewYahooClient(cfg, cache, logging.NewSilent())
}

func TestInfoParsesQuoteSummary(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v10/finance/quoteSummary/2330.TW")
		assert.Contains(t, r.URL.RawQuery, "modules=")
		_, _ = w.Write([]byte(quoteSummaryFixture))
	}), nil)

	info, err := client.Info(context.Background(), "2330.TW")
	require.NoError(t, err)
	assert.Equal(t, "2330.TW", info.Symbol)
	assert.Equal(t, "TSMC", info.ShortName)
	assert.Equal(t, 580.0, info.CurrentPrice)
	assert.Equal(t, 579.0, info.RegularMarketPrice)
	assert.Equal(t, 36.5, info.ForwardEPS)
	assert.Equal(t, 650.0, info.TargetMeanPrice)
	require.NotNil(t, info.Beta)
	assert.Equal(t, 1.1, *info.Beta)
	require.NotNil(t, info.SharesOutstanding)
	assert.Equal(t, 2.593e10, *info.SharesOutstanding)
	assert.Equal(t, "TWD", info.Currency)
	assert.True(t, info.HasPrice())
	assert.Equal(t, 580.0, info.Price())
}

func TestInfoToleratesMissingFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(quoteSummarySparseFixture))
	}), nil)

	info, err := client.Info(context.Background(), "NVO")
	require.NoError(t, err)
	assert.Equal(t, 0.0, info.CurrentPrice)
	assert.Equal(t, 101.2, info.RegularMarketPrice)
	assert.Nil(t, info.Beta)
	assert.Nil(t, info.SharesOutstanding)
	assert.True(t, info.HasPrice())
	assert.Equal(t, 101.2, info.Price())
}

func TestInfoSurfacesUpstreamError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(quoteSummaryErrorFixture))
	}), nil)

	_, err := client.Info(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quote not found")
}

func TestInfoSurfacesHTTPStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}), nil)

	_, err := client.Info(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestInfoUsesCacheOnRepeatLookup(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(quoteSummaryFixture))
	}), NewMemoryCache())

	first, err := client.Info(context.Background(), "2330.TW")
	require.NoError(t, err)
	second, err := client.Info(context.Background(), "2330.TW")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}
