package model

import "time"

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/10 22:10
 * @file: model_brand.go
 * @description: 品牌文档模型
 */

// Brand 品牌文档
type Brand struct {
	BrandId     string        `bson:"brand_id" json:"brandId"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	OwnerId     string        `bson:"owner_id" json:"ownerId"`
	TeamMembers []BrandMember `bson:"team_members" json:"teamMembers"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}

// BrandMember 通过团队分配获得品牌访问权的成员
// Permissions 与团队成员一致，仅存显式授权
type BrandMember struct {
	UserId      string              `bson:"user_id" json:"userId"`
	Role        BrandRole           `bson:"role" json:"role"`
	TeamId      string              `bson:"team_id" json:"teamId"`
	Permissions map[Capability]bool `bson:"permissions,omitempty" json:"permissions,omitempty"`
	AddedAt     time.Time           `bson:"added_at" json:"addedAt"`
}

type CreateBrandReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
