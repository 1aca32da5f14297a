package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetentity "mpt_backend/internal/feature/assets/domain/entity"
	"mpt_backend/internal/feature/portfolio/domain"
	"mpt_backend/internal/feature/portfolio/domain/entity"
	"mpt_backend/internal/feature/portfolio/usecase"
)

// fakeRegistry serves a fixed list of assets and filters it like the real repository.
type fakeRegistry struct {
	assets []assetentity.Asset
	err    error
}

func (f *fakeRegistry) FindAll(context.Context) ([]assetentity.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]assetentity.Asset{}, f.assets...), nil
}

func (f *fakeRegistry) FindByTickers(_ context.Context, tickers []string) ([]assetentity.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := map[string]bool{}
	for _, t := range tickers {
		want[t] = true
	}
	out := []assetentity.Asset{}
	for _, a := range f.assets {
		if want[a.Ticker] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRegistry) FindByIDs(_ context.Context, ids []uint) ([]assetentity.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []assetentity.Asset{}
	for _, a := range f.assets {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

// recordingOptimizer captures every request and answers with a canned result.
type recordingOptimizer struct {
	mu    sync.Mutex
	calls []entity.OptimizationRequest
	res   *entity.PortfolioResult
	err   error
}

func (o *recordingOptimizer) Optimize(_ context.Context, req entity.OptimizationRequest) (*entity.PortfolioResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, req)
	if o.err != nil {
		return nil, o.err
	}
	return o.res, nil
}

type recorderStub struct {
	mu     sync.Mutex
	events [][2]string
}

func (r *recorderStub) RecordOptimisation(mode, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, [2]string{mode, outcome})
}

func registry(tickers ...string) *fakeRegistry {
	r := &fakeRegistry{}
	for i, t := range tickers {
		r.assets = append(r.assets, assetentity.Asset{ID: uint(i + 1), Ticker: t})
	}
	return r
}

func result(weights map[string]float64) *entity.PortfolioResult {
	return &entity.PortfolioResult{Weights: weights, ExpectedReturn: 0.18, Volatility: 0.21, SharpeRatio: 0.76}
}

func TestPortfolioUsecase_OptimizeAll(t *testing.T) {
	t.Parallel()

	t.Run("sends every registered ticker with the default period", func(t *testing.T) {
		t.Parallel()

		opt := &recordingOptimizer{res: result(map[string]float64{"AAPL": 0.6, "PLTR": 0.4})}
		rec := &recorderStub{}
		uc := usecase.NewPortfolioUsecase(registry("AAPL", "PLTR", "AAPL"), opt, rec)

		res, err := uc.OptimizeAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0.6, res.Weights["AAPL"])
		require.Len(t, opt.calls, 1)
		assert.Equal(t, []string{"AAPL", "PLTR", "AAPL"}, opt.calls[0].Tickers, "registry order and duplicates are kept")
		assert.Equal(t, usecase.DefaultPeriod, opt.calls[0].Period)
		assert.Equal(t, [][2]string{{usecase.ModeAll, "success"}}, rec.events)
	})

	t.Run("empty registry still calls the engine once", func(t *testing.T) {
		t.Parallel()

		opt := &recordingOptimizer{res: result(map[string]float64{})}
		uc := usecase.NewPortfolioUsecase(registry(), opt, nil)

		_, err := uc.OptimizeAll(context.Background())
		require.NoError(t, err)
		require.Len(t, opt.calls, 1)
		assert.NotNil(t, opt.calls[0].Tickers)
		assert.Empty(t, opt.calls[0].Tickers)
	})

	t.Run("registry error is returned without calling the engine", func(t *testing.T) {
		t.Parallel()

		opt := &recordingOptimizer{}
		uc := usecase.NewPortfolioUsecase(&fakeRegistry{err: errors.New("db down")}, opt, nil)

		_, err := uc.OptimizeAll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
		assert.Empty(t, opt.calls)
	})
}

func TestPortfolioUsecase_OptimizeSubset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tickers     []string
		period      string
		wantCalls   int
		wantTickers []string
		wantPeriod  string
		wantErr     error
	}{
		{
			name:        "intersection with explicit period",
			tickers:     []string{"AAPL", "PLTR", "NOPE"},
			period:      "6mo",
			wantCalls:   1,
			wantTickers: []string{"AAPL", "PLTR"},
			wantPeriod:  "6mo",
		},
		{
			name:        "blank period falls back to default",
			tickers:     []string{"MSFT"},
			period:      "  ",
			wantCalls:   1,
			wantTickers: []string{"MSFT"},
			wantPeriod:  "1y",
		},
		{
			name:      "no registered tickers",
			tickers:   []string{"ZZZ", "YYY"},
			period:    "6mo",
			wantCalls: 0,
			wantErr:   domain.ErrNoMatchingAssets,
		},
		{
			name:      "empty ticker list",
			tickers:   nil,
			wantCalls: 0,
			wantErr:   domain.ErrNoMatchingAssets,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opt := &recordingOptimizer{res: result(map[string]float64{})}
			rec := &recorderStub{}
			uc := usecase.NewPortfolioUsecase(registry("AAPL", "MSFT", "PLTR"), opt, rec)

			_, err := uc.OptimizeSubset(context.Background(), tt.tickers, tt.period)
			require.Len(t, opt.calls, tt.wantCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, [][2]string{{usecase.ModeTickers, "no_matching_assets"}}, rec.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTickers, opt.calls[0].Tickers)
			assert.Equal(t, tt.wantPeriod, opt.calls[0].Period)
		})
	}
}

func TestPortfolioUsecase_OptimizeByIDs(t *testing.T) {
	t.Parallel()

	opt := &recordingOptimizer{res: result(map[string]float64{"PLTR": 1})}
	uc := usecase.NewPortfolioUsecase(registry("AAPL", "MSFT", "PLTR"), opt, nil)

	res, err := uc.OptimizeByIDs(context.Background(), []uint{3, 42}, "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Weights["PLTR"])
	require.Len(t, opt.calls, 1)
	assert.Equal(t, entity.OptimizationRequest{Tickers: []string{"PLTR"}, Period: "1y"}, opt.calls[0])

	_, err = uc.OptimizeByIDs(context.Background(), []uint{99}, "3mo")
	assert.ErrorIs(t, err, domain.ErrNoMatchingAssets)
	assert.Len(t, opt.calls, 1)
}

func TestPortfolioUsecase_UpstreamFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		optErr      error
		res         *entity.PortfolioResult
		wantErr     error
		wantOutcome string
	}{
		{
			name:        "engine non-success status",
			optErr:      &domain.UpstreamError{StatusCode: 500, Message: "solver failed"},
			wantErr:     domain.ErrUpstreamUnavailable,
			wantOutcome: "upstream_unavailable",
		},
		{
			name:        "engine timeout",
			optErr:      &domain.UpstreamError{Timeout: true, Err: context.DeadlineExceeded},
			wantErr:     domain.ErrUpstreamTimeout,
			wantOutcome: "upstream_timeout",
		},
		{
			name:        "malformed body",
			optErr:      domain.ErrMalformedUpstreamResponse,
			wantErr:     domain.ErrMalformedUpstreamResponse,
			wantOutcome: "malformed_response",
		},
		{
			name:        "weights name a ticker that was not requested",
			res:         result(map[string]float64{"AAPL": 0.5, "TSLA": 0.5}),
			wantErr:     domain.ErrMalformedUpstreamResponse,
			wantOutcome: "malformed_response",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := registry("AAPL", "PLTR")
			before, _ := reg.FindAll(context.Background())
			opt := &recordingOptimizer{res: tt.res, err: tt.optErr}
			rec := &recorderStub{}
			uc := usecase.NewPortfolioUsecase(reg, opt, rec)

			res, err := uc.OptimizeSubset(context.Background(), []string{"AAPL", "PLTR"}, "6mo")
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, [][2]string{{usecase.ModeTickers, tt.wantOutcome}}, rec.events)

			after, _ := reg.FindAll(context.Background())
			assert.Equal(t, before, after, "a failed optimisation leaves the registry untouched")
		})
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", usecase.Outcome(nil))
	assert.Equal(t, "no_matching_assets", usecase.Outcome(domain.ErrNoMatchingAssets))
	assert.Equal(t, "upstream_timeout", usecase.Outcome(&domain.UpstreamError{Timeout: true}))
	assert.Equal(t, "upstream_unavailable", usecase.Outcome(&domain.UpstreamError{StatusCode: 502}))
	assert.Equal(t, "malformed_response", usecase.Outcome(domain.ErrMalformedUpstreamResponse))
	assert.Equal(t, "error", usecase.Outcome(errors.New("boom")))
}
