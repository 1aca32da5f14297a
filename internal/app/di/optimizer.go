// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/rs/zerolog"

	"mpt_backend/internal/platform/externalapi/optimizer"
	infrahttp "mpt_backend/internal/platform/http"
)

// NewOptimizer creates the engine client on a single shared HTTP client
// bounded by the configured connect, read and total timeouts.
func NewOptimizer(cfg optimizer.Config, log zerolog.Logger, observer optimizer.LatencyObserver) *optimizer.Client {
	httpClient := infrahttp.NewHTTPClient(infrahttp.Timeouts{
		Connect:        cfg.ConnectTimeout,
		ResponseHeader: cfg.ReadTimeout,
		Total:          cfg.Timeout,
	})
	return optimizer.NewClient(cfg, httpClient, log, observer)
}
