// Package handler provides the HTTP handlers for portfolio optimisation.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"mpt_backend/internal/feature/portfolio/domain"
	"mpt_backend/internal/feature/portfolio/domain/entity"
	"mpt_backend/internal/feature/portfolio/transport/http/dto"
)

// PortfolioUsecase defines the optimisation operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PortfolioUsecase interface {
	OptimizeAll(ctx context.Context) (*entity.PortfolioResult, error)
	OptimizeSubset(ctx context.Context, tickers []string, period string) (*entity.PortfolioResult, error)
	OptimizeByIDs(ctx context.Context, ids []uint, period string) (*entity.PortfolioResult, error)
}

// PortfolioHandler serves the optimisation endpoints.
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// OptimiseAll handles GET /api/assets/optimise.
func (h *PortfolioHandler) OptimiseAll(c *gin.Context) {
	res, err := h.uc.OptimizeAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*res))
}

// OptimiseChosen handles POST /api/assets/optimise/chosen.
// An absent period falls back to the usecase default ("1y").
func (h *PortfolioHandler) OptimiseChosen(c *gin.Context) {
	var req dto.ChosenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("optimise request validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.uc.OptimizeSubset(c.Request.Context(), req.Tickers, req.Period)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*res))
}

// OptimiseByIDs handles POST /api/assets/optimise with a JSON array of asset ids.
// The lookback window can be set with the "period" query parameter.
func (h *PortfolioHandler) OptimiseByIDs(c *gin.Context) {
	var ids []uint
	if err := c.ShouldBindJSON(&ids); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("optimise request validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.uc.OptimizeByIDs(c.Request.Context(), ids, c.Query("period"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*res))
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoMatchingAssets):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrUpstreamTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrMalformedUpstreamResponse):
		status = http.StatusBadGateway
	}
	log.Error().Err(err).Int("status", status).Str("path", c.FullPath()).Msg("optimisation failed")
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
