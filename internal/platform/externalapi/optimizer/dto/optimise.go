// Package dto defines the wire format of the optimisation engine.
package dto

// OptimiseRequest is the JSON body posted to the engine.
type OptimiseRequest struct {
	Tickers []string `json:"tickers"`
	Period  string   `json:"period"`
}

// OptimiseResponse is the engine's success body. Pointer fields let the
// client tell a missing value from a zero.
type OptimiseResponse struct {
	Weights        map[string]float64 `json:"weights"`
	ExpectedReturn *float64           `json:"expectedReturn"`
	Volatility     *float64           `json:"volatility"`
	SharpeRatio    *float64           `json:"sharpeRatio"`
}

// ErrorResponse is the body the engine sends with a non-success status.
type ErrorResponse struct {
	Error string `json:"error"`
}
