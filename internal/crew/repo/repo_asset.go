package repo

import (
	"errors"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/pkg/database"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/11 21:50
 * @file: repo_asset.go
 * @description: 素材数据访问层
 */

type IAssetRepository interface {
	CreateAsset(asset *model.Asset) error
	GetByAssetId(assetId string) (*model.Asset, error)
	ListByBrand(brandId string) ([]*model.Asset, error)
	DeleteAsset(assetId string) error
}

type AssetRepo struct {
	database.IDatabase
}

func NewAssetRepo(db database.IDatabase) IAssetRepository {
	return &AssetRepo{IDatabase: db}
}

// CreateAsset 新增素材记录
func (r *AssetRepo) CreateAsset(asset *model.Asset) error {
	return r.Database().Create(asset).Error
}

// GetByAssetId 根据素材ID获取记录
func (r *AssetRepo) GetByAssetId(assetId string) (*model.Asset, error) {
	var asset model.Asset
	err := r.Database().Where("asset_id = ?", assetId).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// ListByBrand 列出品牌下的素材
func (r *AssetRepo) ListByBrand(brandId string) ([]*model.Asset, error) {
	var assets []*model.Asset
	err := r.Database().Where("brand_id = ?", brandId).Order("created_at DESC").Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// DeleteAsset 删除素材记录
func (r *AssetRepo) DeleteAsset(assetId string) error {
	return r.Database().Where("asset_id = ?", assetId).Delete(&model.Asset{}).Error
}
