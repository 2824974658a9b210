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

package model

import (
	"time"

	"github.com/go-crew/crew/pkg/statemachine"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/10 22:04
 * @file: model_invitation.go
 * @description: 团队邀请文档模型
 */

// Invitation 团队邀请文档
// 角色与显式授权在创建时冻结，接受时原样写入成员记录
type Invitation struct {
	InvitationId string                        `bson:"invitation_id" json:"invitationId"`
	TeamId       string                        `bson:"team_id" json:"teamId"`
	TeamName     string                        `bson:"team_name" json:"teamName"`
	InvitedEmail string                        `bson:"invited_email" json:"invitedEmail"`
	InvitedBy    string                        `bson:"invited_by" json:"invitedBy"`
	InviterName  string                        `bson:"inviter_name" json:"inviterName"`
	InviterEmail string                        `bson:"inviter_email" json:"inviterEmail"`
	Role         TeamRole                      `bson:"role" json:"role"`
	Permissions  map[Capability]bool           `bson:"permissions,omitempty" json:"permissions,omitempty"`
	Message      string                        `bson:"message" json:"message"`
	Status       statemachine.InvitationStatus `bson:"status" json:"status"`
	ExpiresAt    time.Time                     `bson:"expires_at" json:"expiresAt"`
	CreatedAt    time.Time                     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time                     `bson:"updated_at" json:"updatedAt"`
	AcceptedAt   *time.Time                    `bson:"accepted_at,omitempty" json:"acceptedAt,omitempty"`
	DeclinedAt   *time.Time                    `bson:"declined_at,omitempty" json:"declinedAt,omitempty"`
}

// IsExpired 过期在读取时计算，落库状态可能滞后
func (i *Invitation) IsExpired(now time.Time) bool {
	if i.Status == statemachine.InvitationExpired {
		return true
	}
	return i.Status == statemachine.InvitationPending && now.After(i.ExpiresAt)
}

// EffectiveStatus 返回读取时刻的状态
func (i *Invitation) EffectiveStatus(now time.Time) statemachine.InvitationStatus {
	if i.Status == statemachine.InvitationPending && now.After(i.ExpiresAt) {
		return statemachine.InvitationExpired
	}
	return i.Status
}

type InviteMemberReq struct {
	Email       string          `json:"email" binding:"required"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
	Message     string          `json:"message"`
}

// InvitationView 对外视图，带读取时刻派生字段
type InvitationView struct {
	InvitationId string                        `json:"invitationId"`
	TeamId       string                        `json:"teamId"`
	TeamName     string                        `json:"teamName"`
	InvitedEmail string                        `json:"invitedEmail"`
	InviterName  string                        `json:"inviterName"`
	Role         TeamRole                      `json:"role"`
	Message      string                        `json:"message"`
	Status       statemachine.InvitationStatus `json:"status"`
	ExpiresAt    time.Time                     `json:"expiresAt"`
	CreatedAt    time.Time                     `json:"createdAt"`
	IsExpired    bool                          `json:"isExpired"`
	CanAccept    bool                          `json:"canAccept"`
}

// ToView 生成读取时刻的邀请视图
func (i *Invitation) ToView(now time.Time) InvitationView {
	status := i.EffectiveStatus(now)
	return InvitationView{
		InvitationId: i.InvitationId,
		TeamId:       i.TeamId,
		TeamName:     i.TeamName,
		InvitedEmail: i.InvitedEmail,
		InviterName:  i.InviterName,
		Role:         i.Role,
		Message:      i.Message,
		Status:       status,
		ExpiresAt:    i.ExpiresAt,
		CreatedAt:    i.CreatedAt,
		IsExpired:    status == statemachine.InvitationExpired,
		CanAccept:    status == statemachine.InvitationPending,
	}
}
