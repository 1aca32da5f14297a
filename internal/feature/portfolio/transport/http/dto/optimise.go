// Package dto defines data transfer objects for the portfolio HTTP API.
package dto

import "mpt_backend/internal/feature/portfolio/domain/entity"

// ChosenRequest is the body of POST /api/assets/optimise/chosen.
type ChosenRequest struct {
	Tickers []string `json:"tickers"`
	Period  string   `json:"period"`
}

// PortfolioResponse is the public representation of a PortfolioResult.
type PortfolioResponse struct {
	Weights        map[string]float64 `json:"weights"`
	ExpectedReturn float64            `json:"expectedReturn"`
	Volatility     float64            `json:"volatility"`
	SharpeRatio    float64            `json:"sharpeRatio"`
}

// FromEntity builds the response DTO for a portfolio result.
func FromEntity(r entity.PortfolioResult) PortfolioResponse {
	w := r.Weights
	if w == nil {
		w = map[string]float64{}
	}
	return PortfolioResponse{
		Weights:        w,
		ExpectedReturn: r.ExpectedReturn,
		Volatility:     r.Volatility,
		SharpeRatio:    r.SharpeRatio,
	}
}
