// Package valuation blends four per-share estimates (P/E multiple, EV/EBITDA,
// single-stage DCF, analyst consensus) into one target price.
package valuation

import (
	"errors"
	"fmt"
	"math"

	"fairvalue/backend-go/internal/models"
)

// ErrNoPrice is returned when the snapshot carries no usable current price;
// the handler treats it the same as a failed resolution.
var ErrNoPrice = errors.New("snapshot has no usable price")

const (
	riskFreeDomestic  = 0.015
	riskFreeForeign   = 0.042
	equityRiskPremium = 0.055
	waccFloor         = 0.05
	dcfSpreadFloor    = 0.015

	// Fixed model constant scaling EBITDA in the enterprise-value estimate.
	ebitdaScale = 12

	DataSourceLabel = "Yahoo Finance (Global)"
)

// Engine evaluates snapshots against a fixed profile table. Stateless apart
// from the table, so safe for concurrent use.
type Engine struct {
	profiles ProfileTable
}

func NewEngine(profiles ProfileTable) *Engine {
	return &Engine{profiles: profiles}
}

// Evaluate computes the four model estimates and their blend for one snapshot.
// Deterministic: the same snapshot and label always produce the same result.
func (e *Engine) Evaluate(snap models.MarketSnapshot, industryLabel string) (models.ValuationResult, error) {
	if snap.CurrentPrice == 0 {
		return models.ValuationResult{}, ErrNoPrice
	}

	domestic := snap.Domestic()
	profile := e.profiles.Lookup(industryLabel)

	rf := riskFreeForeign
	if domestic {
		rf = riskFreeDomestic
	}
	wacc := math.Max(rf+snap.Beta*equityRiskPremium, waccFloor)

	var vPE float64
	if snap.FutureEPS > 0 {
		vPE = snap.FutureEPS * profile.PE(domestic)
	}

	var vEV float64
	if snap.EBITDA > 0 && snap.SharesOutstanding > 0 {
		vEV = (snap.EBITDA*ebitdaScale - snap.TotalDebt + snap.TotalCash) / snap.SharesOutstanding
	}

	var vDCF float64
	if snap.FutureEPS > 0 {
		vDCF = snap.FutureEPS * (1 + profile.Growth) / math.Max(wacc-profile.Growth, dcfSpreadFloor)
	}

	vAnalyst := snap.TargetMeanPrice

	target := blend([]float64{vPE, vEV, vDCF, vAnalyst}, snap.CurrentPrice)

	currency := "$"
	if domestic {
		currency = "NT$"
	}

	return models.ValuationResult{
		Symbol:        snap.Symbol,
		Name:          snap.Name,
		CurrentPrice:  round2(snap.CurrentPrice),
		Target:        round2(target),
		AnalystTarget: round2(vAnalyst),
		PE:            round2(vPE),
		EV:            round2(vEV),
		DCF:           round2(vDCF),
		WACC:          fmt.Sprintf("%.2f%%", wacc*100),
		Currency:      currency,
		DataSource:    DataSourceLabel,
	}, nil
}

// blend averages the strictly positive estimates; with none, the current
// price stands in as the target.
func blend(estimates []float64, currentPrice float64) float64 {
	var sum float64
	var n int
	for _, v := range estimates {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return currentPrice
	}
	return sum / float64(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
