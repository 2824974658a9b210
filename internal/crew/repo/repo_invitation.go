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
	"github.com/go-crew/crew/pkg/statemachine"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/11 21:05
 * @file: repo_invitation.go
 * @description: 团队邀请数据访问层
 *
 * 邀请邮箱统一小写落库，查询按小写匹配
 */

type IInvitationRepository interface {
	CreateInvitation(inv *model.Invitation) error
	GetByInvitationId(invitationId string) (*model.Invitation, error)
	GetPendingByTeamAndEmail(teamId, email string) (*model.Invitation, error)
	ListByEmail(email string) ([]*model.Invitation, error)
	ListByTeam(teamId string) ([]*model.Invitation, error)
	RefreshPending(invitationId string, role model.TeamRole, perms map[model.Capability]bool, message string, expiresAt time.Time) (bool, error)
	Transit(invitationId string, from, to statemachine.InvitationStatus) (bool, error)
	DeletePending(teamId, invitationId string) (bool, error)
}

type InvitationRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewInvitationRepo(c *ctx.Context) IInvitationRepository {
	collection := c.GetMongo().GetCollection(model.InvitationCollection)
	return &InvitationRepo{
		ctx:        c,
		collection: collection,
	}
}

// CreateInvitation 创建邀请
func (r *InvitationRepo) CreateInvitation(inv *model.Invitation) error {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	inv.CreatedAt = time.Now()
	inv.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, inv)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// GetByInvitationId 点查邀请
func (r *InvitationRepo) GetByInvitationId(invitationId string) (*model.Invitation, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	var inv model.Invitation
	err := r.collection.FindOne(ctx, bson.M{"invitation_id": invitationId}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return &inv, nil
}

// GetPendingByTeamAndEmail 查找同团队同邮箱的 pending 邀请，用于原地更新
func (r *InvitationRepo) GetPendingByTeamAndEmail(teamId, email string) (*model.Invitation, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"team_id":       teamId,
		"invited_email": email,
		"status":        statemachine.InvitationPending,
	}
	var inv model.Invitation
	err := r.collection.FindOne(ctx, filter).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending invitation: %w", err)
	}
	return &inv, nil
}

// ListByEmail 列出发给某邮箱的全部邀请
func (r *InvitationRepo) ListByEmail(email string) ([]*model.Invitation, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"invited_email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer cursor.Close(ctx)

	var invs []*model.Invitation
	if err := cursor.All(ctx, &invs); err != nil {
		return nil, fmt.Errorf("failed to decode invitations: %w", err)
	}
	return invs, nil
}

// ListByTeam 列出团队的全部邀请
func (r *InvitationRepo) ListByTeam(teamId string) ([]*model.Invitation, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"team_id": teamId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer cursor.Close(ctx)

	var invs []*model.Invitation
	if err := cursor.All(ctx, &invs); err != nil {
		return nil, fmt.Errorf("failed to decode invitations: %w", err)
	}
	return invs, nil
}

// RefreshPending 重新邀请同一邮箱时原地刷新 pending 邀请
func (r *InvitationRepo) RefreshPending(invitationId string, role model.TeamRole, perms map[model.Capability]bool, message string, expiresAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"invitation_id": invitationId,
		"status":        statemachine.InvitationPending,
	}
	update := bson.M{
		"$set": bson.M{
			"role":        role,
			"permissions": perms,
			"message":     message,
			"expires_at":  expiresAt,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to refresh invitation: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// Transit 状态转移，from 条件即 CAS：状态已被他处改掉时 MatchedCount 为 0
func (r *InvitationRepo) Transit(invitationId string, from, to statemachine.InvitationStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{
		"status":     to,
		"updated_at": now,
	}
	switch to {
	case statemachine.InvitationAccepted:
		set["accepted_at"] = now
	case statemachine.InvitationDeclined:
		set["declined_at"] = now
	}

	filter := bson.M{
		"invitation_id": invitationId,
		"status":        from,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to transit invitation: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// DeletePending 取消并删除 pending 邀请
func (r *InvitationRepo) DeletePending(teamId, invitationId string) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx.GetCtx(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"invitation_id": invitationId,
		"team_id":       teamId,
		"status":        statemachine.InvitationPending,
	}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete invitation: %w", err)
	}
	return result.DeletedCount > 0, nil
}
