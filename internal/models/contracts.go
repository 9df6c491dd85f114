package models

// MarketSnapshot is the resolver's view of one resolved ticker. Built fresh per
// request from whichever candidate symbol produced a usable price.
type MarketSnapshot struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	FutureEPS         float64 `json:"future_eps"`
	TargetMeanPrice   float64 `json:"target_mean"`
	Beta              float64 `json:"beta"`
	EBITDA            float64 `json:"ebitda"`
	TotalDebt         float64 `json:"total_debt"`
	TotalCash         float64 `json:"total_cash"`
	SharesOutstanding float64 `json:"shares"`
	Currency          string  `json:"currency"`
}

// Domestic reports whether the snapshot trades on the Taiwan market, which
// switches the risk-free rate and the industry multiples.
func (s MarketSnapshot) Domestic() bool {
	return s.Currency == "TWD"
}

// ValuationResult is the response body of /api/evaluate. Monetary fields are
// rounded to two decimals before the handler serializes them.
type ValuationResult struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	Target        float64 `json:"target"`
	AnalystTarget float64 `json:"analyst_target"`
	PE            float64 `json:"pe"`
	EV            float64 `json:"ev"`
	DCF           float64 `json:"dcf"`
	WACC          string  `json:"wacc"`
	Currency      string  `json:"currency"`
	DataSource    string  `json:"data_source"`
}

type HealthResponse struct {
	Ok          bool                 `json:"ok"`
	TsISO       string               `json:"tsISO"`
	Service     string               `json:"service"`
	Version     string               `json:"version"`
	Deps        []string             `json:"deps"`
	DepsStatus  map[string]DepStatus `json:"deps_status"`
	DataMissing []string             `json:"data_missing"`
}

type DepStatus struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
