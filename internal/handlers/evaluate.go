package handlers

import (
	"errors"
	"net/http"

	"fairvalue/backend-go/internal/services"
	"fairvalue/backend-go/internal/valuation"
)

// Hint shown when no candidate symbol resolves; mirrors the front-end's
// bilingual copy.
const notFoundDetail = "找不到該股票數據，請確認代碼是否正確 (台股輸入數字, 美股輸入代號)"

// Evaluate handles GET /api/evaluate?ticker=&industry=. Resolution failures
// and zero-price snapshots both answer 404; nothing here is fatal.
func (a *API) Evaluate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ticker := q.Get("ticker")
	industry := q.Get("industry")

	snap, err := a.resolver.Resolve(r.Context(), ticker)
	if err != nil {
		if !errors.Is(err, services.ErrTickerNotFound) {
			a.log.Warn().Err(err).Str("ticker", ticker).Msg("resolution failed")
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": notFoundDetail})
		return
	}

	result, err := a.engine.Evaluate(snap, industry)
	if err != nil {
		if !errors.Is(err, valuation.ErrNoPrice) {
			a.log.Warn().Err(err).Str("ticker", ticker).Msg("valuation failed")
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": notFoundDetail})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
