package logic

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/id"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-crew/crew/pkg/storage"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 23:05
 * @file: logic_asset.go
 * @description: asset logic
 */

type AssetLogic struct {
	ctx       *ctx.Context
	assetRepo repo.IAssetRepository
	brandRepo repo.IBrandRepository
	store     storage.StorageProvider
	provider  string
}

func NewAssetLogic(c *ctx.Context, assetRepo repo.IAssetRepository, brandRepo repo.IBrandRepository, store storage.StorageProvider, provider string) *AssetLogic {
	return &AssetLogic{
		ctx:       c,
		assetRepo: assetRepo,
		brandRepo: brandRepo,
		store:     store,
		provider:  provider,
	}
}

// requireBrandAccess 素材操作要求调用者是品牌 owner 或品牌成员
func (al *AssetLogic) requireBrandAccess(brandId, userId string) error {
	brand, err := al.brandRepo.GetBrandById(brandId)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	if brand.OwnerId == userId {
		return nil
	}
	for i := range brand.TeamMembers {
		if brand.TeamMembers[i].UserId == userId {
			return nil
		}
	}
	return ErrBrandAccessDenied
}

// Upload 上传素材到对象存储并登记
func (al *AssetLogic) Upload(userId, brandId string, file *multipart.FileHeader, contentType string) (*model.Asset, error) {
	if err := al.requireBrandAccess(brandId, userId); err != nil {
		return nil, err
	}

	assetId := id.GetHex(12)
	objectName := fmt.Sprintf("%s/%s%s", brandId, assetId, filepath.Ext(file.Filename))

	key, err := al.store.Upload(al.ctx, objectName, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload asset failed: %w", err)
	}

	asset := &model.Asset{
		AssetId:     assetId,
		BrandId:     brandId,
		UploaderId:  userId,
		ObjectName:  key,
		ContentType: contentType,
		Size:        file.Size,
		Provider:    al.provider,
	}
	if err := al.assetRepo.CreateAsset(asset); err != nil {
		// 登记失败时清掉已上传的对象
		if delErr := al.store.Delete(al.ctx, objectName); delErr != nil {
			log.Warnf("cleanup orphan object %s failed: %v", objectName, delErr)
		}
		return nil, err
	}
	return asset, nil
}

// Download 下载素材内容
func (al *AssetLogic) Download(assetId, userId string) (*model.Asset, []byte, error) {
	asset, err := al.assetRepo.GetByAssetId(assetId)
	if err != nil {
		return nil, nil, err
	}
	if asset == nil {
		return nil, nil, ErrAssetNotFound
	}
	if err := al.requireBrandAccess(asset.BrandId, userId); err != nil {
		return nil, nil, err
	}

	data, err := al.store.Download(al.ctx, asset.ObjectName)
	if err != nil {
		return nil, nil, fmt.Errorf("download asset failed: %w", err)
	}
	return asset, data, nil
}

// Delete 删除素材，只有上传者可删
func (al *AssetLogic) Delete(assetId, userId string) error {
	asset, err := al.assetRepo.GetByAssetId(assetId)
	if err != nil {
		return err
	}
	if asset == nil {
		return ErrAssetNotFound
	}
	if asset.UploaderId != userId {
		return ErrInsufficientCapability
	}

	if err := al.store.Delete(al.ctx, asset.ObjectName); err != nil {
		return fmt.Errorf("delete object failed: %w", err)
	}
	return al.assetRepo.DeleteAsset(assetId)
}

// ListByBrand 品牌素材列表
func (al *AssetLogic) ListByBrand(brandId, userId string) ([]*model.Asset, error) {
	if err := al.requireBrandAccess(brandId, userId); err != nil {
		return nil, err
	}
	return al.assetRepo.ListByBrand(brandId)
}
