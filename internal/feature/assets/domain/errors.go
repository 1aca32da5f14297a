// Package domain defines domain-level errors for the assets feature.
package domain

import "errors"

var (
	// ErrAssetNotFound indicates that no asset exists with the requested identifier.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidTicker indicates that an asset was submitted without a usable ticker.
	ErrInvalidTicker = errors.New("ticker must not be empty")
)
