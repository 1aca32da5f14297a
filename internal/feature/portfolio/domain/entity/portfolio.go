// Package entity defines the domain models for the portfolio feature.
package entity

// OptimizationRequest is the input sent to the optimisation engine.
// It is built per call and never persisted.
type OptimizationRequest struct {
	Tickers []string // Tickers to allocate across; order is not significant
	Period  string   // Historical lookback window (e.g., "1y", "6mo")
}

// PortfolioResult is the engine's answer for an OptimizationRequest.
// Weights are expected to sum to roughly 1.0; the engine owns that invariant.
type PortfolioResult struct {
	Weights        map[string]float64
	ExpectedReturn float64
	Volatility     float64
	SharpeRatio    float64
}
