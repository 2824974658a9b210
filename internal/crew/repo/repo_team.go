// Copyright 2025 Crew Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/pkg/ctx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/11 20:32
 * @file: repo_team.go
 * @description: 团队文档数据访问层
 *
 * 所有变更都是对单文档的带条件更新，条件即并发控制：
 * 条件不再成立时 MatchedCount 为 0，由调用方决定如何解释
 */

type ITeamRepository interface {
	CreateTeam(team *model.Team) error
	GetTeamById(teamId string) (*model.Team, error)
	GetTeamsByUserId(userId string) ([]*model.Team, error)
	UpdateTeamDetails(teamId string, updates bson.M) (bool, error)
	ArchiveTeam(teamId string) (bool, error)
	AddMember(teamId string, member *model.Membership) (bool, error)
	UpdateMemberRole(teamId, userId string, role model.TeamRole, perms map[model.Capability]bool) (bool, error)
	RemoveMember(teamId, userId string) (bool, error)
	AddBrandAssignment(teamId string, assignment *model.BrandAssignment) (bool, error)
}

type TeamRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewTeamRepo(c *ctx.Context) ITeamRepository {
	collection := c.GetMongo().GetCollection(model.TeamCollection)
	return &TeamRepo{
		ctx:        c,
		collection: collection,
	}
}

// CreateTeam 创建团队
func (r *TeamRepo) CreateTeam(team *model.Team) error {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

// GetTeamById 点查团队文档
func (r *TeamRepo) GetTeamById(teamId string) (*model.Team, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	var team model.Team
	err := r.collection.FindOne(ctx, bson.M{"team_id": teamId}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// GetTeamsByUserId 列出用户参与的所有团队
func (r *TeamRepo) GetTeamsByUserId(userId string) ([]*model.Team, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"owner_id": userId},
			{"members": bson.M{"$elemMatch": bson.M{"user_id": userId, "status": model.MemberStatusActive}}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer cursor.Close(ctx)

	var teams []*model.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// UpdateTeamDetails 更新团队基础字段
func (r *TeamRepo) UpdateTeamDetails(teamId string, updates bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	updates["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"team_id": teamId, "status": model.TeamStatusActive},
		bson.M{"$set": updates},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update team: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// ArchiveTeam 归档团队，代替物理删除
func (r *TeamRepo) ArchiveTeam(teamId string) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"team_id": teamId, "status": model.TeamStatusActive},
		bson.M{"$set": bson.M{"status": model.TeamStatusArchived, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to archive team: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// AddMember 添加成员
// 过滤条件排除已是 active 成员的用户，重复添加时 MatchedCount 为 0
func (r *TeamRepo) AddMember(teamId string, member *model.Membership) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"team_id": teamId,
		"members": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{"user_id": member.UserId, "status": model.MemberStatusActive},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{"members": member},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to add member: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// UpdateMemberRole 更新成员角色与显式授权
func (r *TeamRepo) UpdateMemberRole(teamId, userId string, role model.TeamRole, perms map[model.Capability]bool) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"team_id": teamId,
		"members": bson.M{"$elemMatch": bson.M{"user_id": userId, "status": model.MemberStatusActive}},
	}
	update := bson.M{
		"$set": bson.M{
			"members.$.role":        role,
			"members.$.permissions": perms,
			"updated_at":            time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update member role: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// RemoveMember 移除成员，owner 由过滤条件排除，结构上不可移除
func (r *TeamRepo) RemoveMember(teamId, userId string) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"team_id":  teamId,
		"owner_id": bson.M{"$ne": userId},
		"members":  bson.M{"$elemMatch": bson.M{"user_id": userId, "status": model.MemberStatusActive}},
	}
	update := bson.M{
		"$set": bson.M{
			"members.$.status": model.MemberStatusRemoved,
			"updated_at":       time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// AddBrandAssignment 添加品牌分配
// 过滤条件排除已存在的 active 分配，重复分配时 MatchedCount 为 0
func (r *TeamRepo) AddBrandAssignment(teamId string, assignment *model.BrandAssignment) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"team_id": teamId,
		"brand_assignments": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{"brand_id": assignment.BrandId, "status": model.AssignmentStatusActive},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{"brand_assignments": assignment},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to add brand assignment: %w", err)
	}
	return result.MatchedCount > 0, nil
}
