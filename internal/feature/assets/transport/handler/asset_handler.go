// Package handler provides the HTTP handlers for the assets feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"mpt_backend/internal/feature/assets/domain"
	"mpt_backend/internal/feature/assets/domain/entity"
	"mpt_backend/internal/feature/assets/transport/http/dto"
)

// AssetUsecase defines the registry operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AssetUsecase interface {
	GetAsset(ctx context.Context, id uint) (*entity.Asset, error)
	ListAssets(ctx context.Context) ([]entity.Asset, error)
	CreateAsset(ctx context.Context, in entity.Asset) (*entity.Asset, error)
	UpdateAsset(ctx context.Context, id uint, in entity.Asset) (*entity.Asset, error)
	DeleteAsset(ctx context.Context, id uint) error
	DeleteAllAssets(ctx context.Context) error
}

// AssetHandler serves the /api/assets CRUD endpoints.
type AssetHandler struct {
	uc AssetUsecase
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(uc AssetUsecase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Get handles GET /api/assets/:id.
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.uc.GetAsset(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*a))
}

// List handles GET /api/assets.
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.uc.ListAssets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.FromEntity(a))
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /api/assets.
func (h *AssetHandler) Create(c *gin.Context) {
	var req dto.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("create asset validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	a, err := h.uc.CreateAsset(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	log.Info().Uint("asset_id", a.ID).Str("ticker", a.Ticker).Msg("asset created")
	c.JSON(http.StatusCreated, dto.FromEntity(*a))
}

// Update handles PUT /api/assets/:id.
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("update asset validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	a, err := h.uc.UpdateAsset(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*a))
}

// Delete handles DELETE /api/assets/:id.
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteAsset(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/assets.
func (h *AssetHandler) DeleteAll(c *gin.Context) {
	if err := h.uc.DeleteAllAssets(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	log.Info().Msg("all assets deleted")
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTicker):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("asset request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
