package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/pkg/ctx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/11 21:30
 * @file: repo_brand.go
 * @description: 品牌数据访问层
 */

type IBrandRepository interface {
	CreateBrand(brand *model.Brand) error
	GetBrandById(brandId string) (*model.Brand, error)
	AddTeamMembers(brandId string, members []model.BrandMember) (bool, error)
}

type BrandRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewBrandRepo(c *ctx.Context) IBrandRepository {
	collection := c.GetMongo().GetCollection(model.BrandCollection)
	return &BrandRepo{
		ctx:        c,
		collection: collection,
	}
}

// CreateBrand 创建品牌
func (r *BrandRepo) CreateBrand(brand *model.Brand) error {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, brand)
	if err != nil {
		return fmt.Errorf("failed to insert brand: %w", err)
	}
	return nil
}

// GetBrandById 点查品牌
func (r *BrandRepo) GetBrandById(brandId string) (*model.Brand, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	var brand model.Brand
	err := r.collection.FindOne(ctx, bson.M{"brand_id": brandId}).Decode(&brand)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return &brand, nil
}

// AddTeamMembers 品牌分配给团队后，把团队成员同步进品牌成员表
// 逐个成员 upsert：不存在时 $ne 过滤追加，已存在时按位置更新角色和授权，
// 重新分配不会产生重复成员
func (r *BrandRepo) AddTeamMembers(brandId string, members []model.BrandMember) (bool, error) {
	if len(members) == 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 10*time.Second)
	defer cancel()

	matched := false
	for i := range members {
		m := members[i]

		insert := bson.M{
			"$push": bson.M{"team_members": m},
			"$set":  bson.M{"updated_at": time.Now()},
		}
		result, err := r.collection.UpdateOne(ctx, bson.M{
			"brand_id":             brandId,
			"team_members.user_id": bson.M{"$ne": m.UserId},
		}, insert)
		if err != nil {
			return false, fmt.Errorf("failed to add brand member %s: %w", m.UserId, err)
		}
		if result.MatchedCount > 0 {
			matched = true
			continue
		}

		refresh := bson.M{
			"$set": bson.M{
				"team_members.$.role":        m.Role,
				"team_members.$.team_id":     m.TeamId,
				"team_members.$.permissions": m.Permissions,
				"updated_at":                 time.Now(),
			},
		}
		result, err = r.collection.UpdateOne(ctx, bson.M{
			"brand_id":             brandId,
			"team_members.user_id": m.UserId,
		}, refresh)
		if err != nil {
			return false, fmt.Errorf("failed to refresh brand member %s: %w", m.UserId, err)
		}
		if result.MatchedCount > 0 {
			matched = true
		}
	}
	return matched, nil
}
