package model

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/10 22:16
 * @file: model_asset.go
 * @description: 素材模型
 */

// Asset 上传到对象存储的素材
type Asset struct {
	BaseModel
	AssetId     string `gorm:"column:asset_id" json:"assetId"`
	BrandId     string `gorm:"column:brand_id" json:"brandId"`
	UploaderId  string `gorm:"column:uploader_id" json:"uploaderId"`
	ObjectName  string `gorm:"column:object_name" json:"objectName"`
	ContentType string `gorm:"column:content_type" json:"contentType"`
	Size        int64  `gorm:"column:size" json:"size"`
	Provider    string `gorm:"column:provider" json:"provider"` // 存储后端标识
}

func (Asset) TableName() string {
	return "t_asset"
}
