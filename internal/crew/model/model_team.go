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

import "time"

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/10 21:50
 * @file: model_team.go
 * @description: 团队文档模型，落在 MongoDB
 */

// 集合名
const (
	TeamCollection       = "t_team"
	InvitationCollection = "t_team_invitation"
	BrandCollection      = "t_brand"
)

// 团队类型
const (
	TeamTypeMaster   = "master"
	TeamTypeStandard = "standard"
)

// 团队状态
const (
	TeamStatusActive   = "active"
	TeamStatusArchived = "archived"
)

// 成员状态
const (
	MemberStatusActive  = "active"
	MemberStatusRemoved = "removed"
)

// Team 团队文档
// 反范式设计：成员与品牌分配内嵌，单次点查即可读出整个团队
type Team struct {
	TeamId           string            `bson:"team_id" json:"teamId"`
	Name             string            `bson:"name" json:"name"`
	Description      string            `bson:"description" json:"description"`
	TeamType         string            `bson:"team_type" json:"teamType"` // master, standard
	OwnerId          string            `bson:"owner_id" json:"ownerId"`
	Members          []Membership      `bson:"members" json:"members"`
	BrandAssignments []BrandAssignment `bson:"brand_assignments" json:"brandAssignments"`
	Status           string            `bson:"status" json:"status"` // active, archived
	CreatedAt        time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updated_at" json:"updatedAt"`
}

// Membership 团队成员
// Permissions 仅存显式授权，角色基线不落库
type Membership struct {
	UserId      string              `bson:"user_id" json:"userId"`
	Role        TeamRole            `bson:"role" json:"role"`
	Permissions map[Capability]bool `bson:"permissions,omitempty" json:"permissions,omitempty"`
	JoinedAt    time.Time           `bson:"joined_at" json:"joinedAt"`
	Status      string              `bson:"status" json:"status"` // active, removed
}

// 品牌分配状态
const (
	AssignmentStatusActive  = "active"
	AssignmentStatusRevoked = "revoked"
)

// BrandRole 品牌维度的角色，与团队角色是两套枚举
type BrandRole string

const (
	BrandRoleOwner    BrandRole = "owner"
	BrandRoleAdmin    BrandRole = "admin"
	BrandRoleEditor   BrandRole = "editor"
	BrandRoleUploader BrandRole = "uploader"
	BrandRoleViewer   BrandRole = "viewer"
)

// ParseBrandRole 校验品牌角色字符串
func ParseBrandRole(s string) (BrandRole, bool) {
	switch BrandRole(s) {
	case BrandRoleOwner, BrandRoleAdmin, BrandRoleEditor, BrandRoleUploader, BrandRoleViewer:
		return BrandRole(s), true
	default:
		return "", false
	}
}

// BrandAssignment 团队与品牌的关联
type BrandAssignment struct {
	BrandId    string    `bson:"brand_id" json:"brandId"`
	BrandName  string    `bson:"brand_name" json:"brandName"`
	Role       BrandRole `bson:"role" json:"role"`
	AssignedBy string    `bson:"assigned_by" json:"assignedBy"`
	AssignedAt time.Time `bson:"assigned_at" json:"assignedAt"`
	Status     string    `bson:"status" json:"status"` // active, revoked
}

// ActiveMember 返回处于 active 状态的成员，不存在时 ok 为 false
func (t *Team) ActiveMember(userId string) (*Membership, bool) {
	for i := range t.Members {
		m := &t.Members[i]
		if m.UserId == userId && m.Status == MemberStatusActive {
			return m, true
		}
	}
	return nil, false
}

// HasActiveAssignment 判断品牌是否已有 active 分配
func (t *Team) HasActiveAssignment(brandId string) bool {
	for i := range t.BrandAssignments {
		a := &t.BrandAssignments[i]
		if a.BrandId == brandId && a.Status == AssignmentStatusActive {
			return true
		}
	}
	return false
}

type CreateTeamReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TeamType    string `json:"teamType"`
}

type UpdateTeamReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateMemberRoleReq struct {
	Role        string          `json:"role" binding:"required"`
	Permissions map[string]bool `json:"permissions"`
}

type AssignBrandReq struct {
	BrandId     string          `json:"brandId" binding:"required"`
	Role        string          `json:"role" binding:"required"`
	Permissions map[string]bool `json:"permissions"`
}

// TeamMemberView 成员列表视图，补充了用户表里的展示字段
type TeamMemberView struct {
	UserId    string              `json:"userId"`
	Username  string              `json:"username"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Avatar    string              `json:"avatar"`
	Email     string              `json:"email"`
	Role      TeamRole            `json:"role"`
	JoinedAt  time.Time           `json:"joinedAt"`
	IsOwner   bool                `json:"isOwner"`
	Caps      map[Capability]bool `json:"capabilities"`
}
