// Package adapters provides the gorm-backed repository for the assets feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mpt_backend/internal/feature/assets/domain"
	"mpt_backend/internal/feature/assets/domain/entity"
	"mpt_backend/internal/feature/assets/usecase"
)

// AssetModel is the persisted form of an asset.
type AssetModel struct {
	ID             uint     `gorm:"primaryKey"`
	Ticker         string   `gorm:"size:32;not null;index"`
	ExpectedReturn *float64 `gorm:"column:expected_return"`
	Volatility     *float64 `gorm:"column:volatility"`
}

func (AssetModel) TableName() string {
	return "assets"
}

type assetGorm struct {
	db *gorm.DB
}

var _ usecase.AssetRepository = (*assetGorm)(nil)

// NewAssetRepository creates an asset repository on top of the given gorm connection.
func NewAssetRepository(db *gorm.DB) *assetGorm {
	return &assetGorm{db: db}
}

func toModel(e entity.Asset) AssetModel {
	return AssetModel{
		ID:             e.ID,
		Ticker:         e.Ticker,
		ExpectedReturn: e.ExpectedReturn,
		Volatility:     e.Volatility,
	}
}

func toEntity(m AssetModel) entity.Asset {
	return entity.Asset{
		ID:             m.ID,
		Ticker:         m.Ticker,
		ExpectedReturn: m.ExpectedReturn,
		Volatility:     m.Volatility,
	}
}

func toEntities(rows []AssetModel) []entity.Asset {
	out := make([]entity.Asset, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out
}

// FindByID returns domain.ErrAssetNotFound when the id does not exist.
func (r *assetGorm) FindByID(ctx context.Context, id uint) (*entity.Asset, error) {
	var m AssetModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	a := toEntity(m)
	return &a, nil
}

// FindAll returns all assets ordered by id.
func (r *assetGorm) FindAll(ctx context.Context) ([]entity.Asset, error) {
	var rows []AssetModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindByTickers returns the assets whose ticker is in tickers.
// Unknown tickers are omitted, not reported.
func (r *assetGorm) FindByTickers(ctx context.Context, tickers []string) ([]entity.Asset, error) {
	if len(tickers) == 0 {
		return []entity.Asset{}, nil
	}
	var rows []AssetModel
	if err := r.db.WithContext(ctx).
		Where("ticker IN ?", tickers).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindByIDs returns the assets whose id is in ids. Unknown ids are omitted.
func (r *assetGorm) FindByIDs(ctx context.Context, ids []uint) ([]entity.Asset, error) {
	if len(ids) == 0 {
		return []entity.Asset{}, nil
	}
	var rows []AssetModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Insert stores a new asset and writes the assigned id back to asset.
func (r *assetGorm) Insert(ctx context.Context, asset *entity.Asset) error {
	m := toModel(*asset)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	asset.ID = m.ID
	return nil
}

// Update overwrites every column of an existing asset, including nil statistics.
func (r *assetGorm) Update(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing AssetModel
		if err := tx.First(&existing, asset.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssetNotFound
			}
			return err
		}
		m := toModel(*asset)
		return tx.Save(&m).Error
	})
}

// Delete removes the asset with the given id. A missing id is a no-op.
func (r *assetGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&AssetModel{}, id).Error
}

// DeleteAll removes every asset.
func (r *assetGorm) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&AssetModel{}).Error
}
