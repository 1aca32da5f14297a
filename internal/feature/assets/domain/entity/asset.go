// Package entity defines the domain models for the assets feature.
package entity

// Asset is a tradable instrument registered in the catalogue.
// ExpectedReturn and Volatility are optional descriptive statistics
// (historical mean return and standard deviation of returns).
type Asset struct {
	ID             uint     // Registry-assigned identifier
	Ticker         string   // Trading symbol (e.g., "AAPL"), matched case-sensitively
	ExpectedReturn *float64 // Historical mean return, nil when unknown
	Volatility     *float64 // Standard deviation of returns, nil when unknown
}
