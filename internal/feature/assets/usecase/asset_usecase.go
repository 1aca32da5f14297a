// Package usecase implements the business logic for asset registry operations.
package usecase

import (
	"context"
	"strings"

	"mpt_backend/internal/feature/assets/domain"
	"mpt_backend/internal/feature/assets/domain/entity"
)

// AssetRepository abstracts the persistence layer for asset records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AssetRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Asset, error)
	FindAll(ctx context.Context) ([]entity.Asset, error)
	Insert(ctx context.Context, asset *entity.Asset) error
	Update(ctx context.Context, asset *entity.Asset) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

// AssetUsecase provides CRUD operations over the asset registry.
type AssetUsecase struct {
	repo AssetRepository
}

// NewAssetUsecase creates a new AssetUsecase with the given repository.
func NewAssetUsecase(r AssetRepository) *AssetUsecase {
	return &AssetUsecase{repo: r}
}

// GetAsset returns the asset with the given id or domain.ErrAssetNotFound.
func (u *AssetUsecase) GetAsset(ctx context.Context, id uint) (*entity.Asset, error) {
	return u.repo.FindByID(ctx, id)
}

// ListAssets returns every registered asset.
func (u *AssetUsecase) ListAssets(ctx context.Context) ([]entity.Asset, error) {
	return u.repo.FindAll(ctx)
}

// CreateAsset registers a new asset. Any id on the input is ignored;
// the registry assigns one.
func (u *AssetUsecase) CreateAsset(ctx context.Context, in entity.Asset) (*entity.Asset, error) {
	ticker, err := normalizeTicker(in.Ticker)
	if err != nil {
		return nil, err
	}
	a := &entity.Asset{
		Ticker:         ticker,
		ExpectedReturn: in.ExpectedReturn,
		Volatility:     in.Volatility,
	}
	if err := u.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAsset replaces the fields of an existing asset.
// It returns domain.ErrAssetNotFound when id does not exist.
func (u *AssetUsecase) UpdateAsset(ctx context.Context, id uint, in entity.Asset) (*entity.Asset, error) {
	ticker, err := normalizeTicker(in.Ticker)
	if err != nil {
		return nil, err
	}
	a := &entity.Asset{
		ID:             id,
		Ticker:         ticker,
		ExpectedReturn: in.ExpectedReturn,
		Volatility:     in.Volatility,
	}
	if err := u.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAsset removes a single asset. Deleting an unknown id is not an error.
func (u *AssetUsecase) DeleteAsset(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

// DeleteAllAssets empties the registry.
func (u *AssetUsecase) DeleteAllAssets(ctx context.Context) error {
	return u.repo.DeleteAll(ctx)
}

// normalizeTicker trims surrounding whitespace; case is preserved.
func normalizeTicker(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", domain.ErrInvalidTicker
	}
	return t, nil
}
