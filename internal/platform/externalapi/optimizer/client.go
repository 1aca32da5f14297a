package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mpt_backend/internal/feature/portfolio/domain"
	"mpt_backend/internal/feature/portfolio/domain/entity"
	"mpt_backend/internal/feature/portfolio/usecase"
	"mpt_backend/internal/platform/externalapi/optimizer/dto"
)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 4 << 10

// LatencyObserver receives the duration of each engine call.
type LatencyObserver interface {
	ObserveEngineRequest(outcome string, seconds float64)
}

// Client calls the optimisation engine over HTTP. It is safe for concurrent use;
// the underlying *http.Client is shared across requests.
type Client struct {
	cfg      Config
	client   *http.Client
	log      zerolog.Logger
	observer LatencyObserver
}

var _ usecase.Optimizer = (*Client)(nil)

// NewClient creates a Client. observer may be nil.
func NewClient(cfg Config, client *http.Client, log zerolog.Logger, observer LatencyObserver) *Client {
	return &Client{
		cfg:      cfg,
		client:   client,
		log:      log.With().Str("client", "optimizer").Logger(),
		observer: observer,
	}
}

// Optimize posts req to the engine and parses the portfolio it returns.
// Transport failures and non-2xx answers are reported as *domain.UpstreamError;
// undecodable or incomplete bodies as domain.ErrMalformedUpstreamResponse.
func (c *Client) Optimize(ctx context.Context, req entity.OptimizationRequest) (res *entity.PortfolioResult, err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveEngineRequest(usecase.Outcome(err), time.Since(start).Seconds())
		}
	}()

	tickers := req.Tickers
	if tickers == nil {
		tickers = []string{}
	}
	body, err := json.Marshal(dto.OptimiseRequest{Tickers: tickers, Period: req.Period})
	if err != nil {
		return nil, fmt.Errorf("marshal optimise request: %w", err)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.OptimisePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build optimise request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.log.Debug().Int("tickers", len(tickers)).Str("period", req.Period).Msg("calling optimisation engine")

	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &domain.UpstreamError{Timeout: isTimeout(err), Err: err}
	}
	defer func() {
		if cerr := httpRes.Body.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("failed to close response body")
		}
	}()

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		return nil, c.statusError(httpRes)
	}

	var out dto.OptimiseResponse
	if err := json.NewDecoder(httpRes.Body).Decode(&out); err != nil {
		if isTimeout(err) {
			return nil, &domain.UpstreamError{Timeout: true, Err: err}
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedUpstreamResponse, err)
	}
	return toResult(out)
}

func (c *Client) statusError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	msg := strings.TrimSpace(string(raw))
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	c.log.Warn().Int("status", res.StatusCode).Str("message", msg).Msg("optimisation engine returned an error")
	return &domain.UpstreamError{StatusCode: res.StatusCode, Message: msg}
}

func toResult(out dto.OptimiseResponse) (*entity.PortfolioResult, error) {
	var missing []string
	if out.Weights == nil {
		missing = append(missing, "weights")
	}
	if out.ExpectedReturn == nil {
		missing = append(missing, "expectedReturn")
	}
	if out.Volatility == nil {
		missing = append(missing, "volatility")
	}
	if out.SharpeRatio == nil {
		missing = append(missing, "sharpeRatio")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrMalformedUpstreamResponse, strings.Join(missing, ", "))
	}
	return &entity.PortfolioResult{
		Weights:        out.Weights,
		ExpectedReturn: *out.ExpectedReturn,
		Volatility:     *out.Volatility,
		SharpeRatio:    *out.SharpeRatio,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
