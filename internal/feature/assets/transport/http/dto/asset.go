// Package dto defines data transfer objects for the assets HTTP API.
package dto

import "mpt_backend/internal/feature/assets/domain/entity"

// AssetRequest is the body accepted by POST /api/assets and PUT /api/assets/:id.
type AssetRequest struct {
	Ticker         string   `json:"ticker" binding:"required"`
	ExpectedReturn *float64 `json:"expectedReturn"`
	Volatility     *float64 `json:"volatility"`
}

// ToEntity converts the request into a domain asset without an id.
func (r AssetRequest) ToEntity() entity.Asset {
	return entity.Asset{
		Ticker:         r.Ticker,
		ExpectedReturn: r.ExpectedReturn,
		Volatility:     r.Volatility,
	}
}

// AssetResponse is the public representation of an asset.
type AssetResponse struct {
	ID             uint     `json:"id"`
	Ticker         string   `json:"ticker"`
	ExpectedReturn *float64 `json:"expectedReturn,omitempty"`
	Volatility     *float64 `json:"volatility,omitempty"`
}

// FromEntity builds the response DTO for an asset.
func FromEntity(a entity.Asset) AssetResponse {
	return AssetResponse{
		ID:             a.ID,
		Ticker:         a.Ticker,
		ExpectedReturn: a.ExpectedReturn,
		Volatility:     a.Volatility,
	}
}
