package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"fairvalue/backend-go/internal/models"
)

// ErrTickerNotFound means no candidate symbol produced a usable price.
var ErrTickerNotFound = errors.New("ticker not found")

// Taiwan listings are numeric codes; the exchange suffix decides main board
// vs. OTC. The main board is always tried first.
const (
	suffixTWSE = ".TW"
	suffixTPEX = ".TWO"
)

// Resolver turns a raw ticker string into a MarketSnapshot by trying candidate
// symbols against the data source in a fixed order.
type Resolver struct {
	source QuoteSource
	pool   *FetchPool
	log    zerolog.Logger
}

func NewResolver(source QuoteSource, pool *FetchPool, log zerolog.Logger) *Resolver {
	return &Resolver{source: source, pool: pool, log: log}
}

// Candidates normalizes the raw input and expands it into the symbols to try.
// Numeric-only input is a Taiwan code and gets the main-board suffix first,
// then the OTC suffix; anything else is looked up as-is.
func Candidates(raw string) []string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return nil
	}
	if isDigits(t) {
		return []string{t + suffixTWSE, t + suffixTPEX}
	}
	return []string{t}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve tries each candidate in order on the fetch pool and returns the
// snapshot built from the first record with a usable price. Source errors on a
// candidate are logged and skipped; only exhausting every candidate fails the
// resolution.
func (r *Resolver) Resolve(ctx context.Context, rawTicker string) (models.MarketSnapshot, error) {
	candidates := Candidates(rawTicker)
	if len(candidates) == 0 {
		return models.MarketSnapshot{}, ErrTickerNotFound
	}

	var (
		snap  models.MarketSnapshot
		found bool
	)
	run := func() {
		for _, candidate := range candidates {
			info, err := r.source.Info(ctx, candidate)
			if err != nil {
				r.log.Warn().Err(err).Str("candidate", candidate).Msg("candidate lookup failed")
				continue
			}
			if !info.HasPrice() {
				r.log.Debug().Str("candidate", candidate).Msg("candidate has no usable price")
				continue
			}
			snap = snapshotFromInfo(info, candidate)
			found = true
			return
		}
	}
	if r.pool != nil {
		if err := r.pool.Run(ctx, run); err != nil {
			return models.MarketSnapshot{}, err
		}
	} else {
		run()
	}

	if !found {
		return models.MarketSnapshot{}, ErrTickerNotFound
	}
	return snap, nil
}

func snapshotFromInfo(info QuoteInfo, candidate string) models.MarketSnapshot {
	symbol := info.Symbol
	if symbol == "" {
		symbol = candidate
	}
	futureEPS := info.ForwardEPS
	if futureEPS == 0 {
		futureEPS = info.TrailingEPS
	}
	beta := 1.0
	if info.Beta != nil {
		beta = *info.Beta
	}
	shares := 1.0
	if info.SharesOutstanding != nil {
		shares = *info.SharesOutstanding
	}
	currency := info.Currency
	if currency == "" {
		currency = "USD"
	}
	return models.MarketSnapshot{
		Symbol:            strings.ToUpper(symbol),
		Name:              info.ShortName,
		CurrentPrice:      info.Price(),
		FutureEPS:         futureEPS,
		TargetMeanPrice:   info.TargetMeanPrice,
		Beta:              beta,
		EBITDA:            info.EBITDA,
		TotalDebt:         info.TotalDebt,
		TotalCash:         info.TotalCash,
		SharesOutstanding: shares,
		Currency:          currency,
	}
}
