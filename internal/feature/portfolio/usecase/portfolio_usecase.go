// Package usecase implements portfolio optimisation: it resolves the participating
// assets, validates the request and delegates the computation to the external engine.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	assetentity "mpt_backend/internal/feature/assets/domain/entity"
	"mpt_backend/internal/feature/portfolio/domain"
	"mpt_backend/internal/feature/portfolio/domain/entity"
)

// DefaultPeriod is the lookback window used when the caller does not choose one.
const DefaultPeriod = "1y"

// Optimisation modes, used as metric labels.
const (
	ModeAll     = "all"
	ModeTickers = "tickers"
	ModeIDs     = "ids"
)

// AssetReader is the read side of the asset registry.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AssetReader interface {
	FindAll(ctx context.Context) ([]assetentity.Asset, error)
	FindByTickers(ctx context.Context, tickers []string) ([]assetentity.Asset, error)
	FindByIDs(ctx context.Context, ids []uint) ([]assetentity.Asset, error)
}

// Optimizer performs one optimisation call against the external engine.
type Optimizer interface {
	Optimize(ctx context.Context, req entity.OptimizationRequest) (*entity.PortfolioResult, error)
}

// Recorder receives one event per optimisation call.
type Recorder interface {
	RecordOptimisation(mode, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordOptimisation(string, string) {}

// PortfolioUsecase orchestrates optimisation runs. It holds no per-call state
// and is safe for concurrent use.
type PortfolioUsecase struct {
	assets    AssetReader
	optimizer Optimizer
	recorder  Recorder
}

// NewPortfolioUsecase creates a PortfolioUsecase. recorder may be nil.
func NewPortfolioUsecase(assets AssetReader, optimizer Optimizer, recorder Recorder) *PortfolioUsecase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &PortfolioUsecase{assets: assets, optimizer: optimizer, recorder: recorder}
}

// OptimizeAll optimises across every registered asset with DefaultPeriod.
// The registry is trusted as-is: duplicates are kept and an empty registry
// still produces one engine call with no tickers.
func (u *PortfolioUsecase) OptimizeAll(ctx context.Context) (res *entity.PortfolioResult, err error) {
	defer func() { u.recorder.RecordOptimisation(ModeAll, Outcome(err)) }()

	assets, err := u.assets.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	return u.optimize(ctx, tickersOf(assets), DefaultPeriod)
}

// OptimizeSubset optimises across the registered assets matching tickers.
// It fails with domain.ErrNoMatchingAssets, without calling the engine,
// when none of the tickers are registered. A blank period means DefaultPeriod.
func (u *PortfolioUsecase) OptimizeSubset(ctx context.Context, tickers []string, period string) (res *entity.PortfolioResult, err error) {
	defer func() { u.recorder.RecordOptimisation(ModeTickers, Outcome(err)) }()

	assets, err := u.assets.FindByTickers(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("resolve tickers: %w", err)
	}
	if len(assets) == 0 {
		return nil, domain.ErrNoMatchingAssets
	}
	return u.optimize(ctx, tickersOf(assets), periodOrDefault(period))
}

// OptimizeByIDs behaves like OptimizeSubset but selects assets by id.
func (u *PortfolioUsecase) OptimizeByIDs(ctx context.Context, ids []uint, period string) (res *entity.PortfolioResult, err error) {
	defer func() { u.recorder.RecordOptimisation(ModeIDs, Outcome(err)) }()

	assets, err := u.assets.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve asset ids: %w", err)
	}
	if len(assets) == 0 {
		return nil, domain.ErrNoMatchingAssets
	}
	return u.optimize(ctx, tickersOf(assets), periodOrDefault(period))
}

func (u *PortfolioUsecase) optimize(ctx context.Context, tickers []string, period string) (*entity.PortfolioResult, error) {
	req := entity.OptimizationRequest{Tickers: tickers, Period: period}
	res, err := u.optimizer.Optimize(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkWeights(req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkWeights rejects results that allocate to tickers the request never named.
func checkWeights(req entity.OptimizationRequest, res *entity.PortfolioResult) error {
	requested := make(map[string]struct{}, len(req.Tickers))
	for _, t := range req.Tickers {
		requested[t] = struct{}{}
	}
	for t := range res.Weights {
		if _, ok := requested[t]; !ok {
			return fmt.Errorf("%w: unexpected ticker %q in weights", domain.ErrMalformedUpstreamResponse, t)
		}
	}
	return nil
}

func tickersOf(assets []assetentity.Asset) []string {
	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		tickers = append(tickers, a.Ticker)
	}
	return tickers
}

func periodOrDefault(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return DefaultPeriod
	}
	return p
}

// Outcome classifies an optimisation error into a short label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNoMatchingAssets):
		return "no_matching_assets"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, domain.ErrMalformedUpstreamResponse):
		return "malformed_response"
	default:
		return "error"
	}
}
