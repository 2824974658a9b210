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

package logic

import (
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/id"
	"github.com/go-crew/crew/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 20:40
 * @file: logic_team.go
 * @description: team logic
 */

type TeamLogic struct {
	ctx      *ctx.Context
	teamRepo repo.ITeamRepository
	userRepo repo.IUserRepository
}

func NewTeamLogic(ctx *ctx.Context, teamRepo repo.ITeamRepository, userRepo repo.IUserRepository) *TeamLogic {
	return &TeamLogic{
		ctx:      ctx,
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeam 创建团队，创建者即 owner，唯一且始终出现在成员列表里
func (tl *TeamLogic) CreateTeam(userId string, req *model.CreateTeamReq) (*model.Team, error) {
	teamType := req.TeamType
	if teamType == "" {
		teamType = model.TeamTypeStandard
	}

	now := time.Now()
	team := &model.Team{
		TeamId:      id.GetHex(12),
		Name:        req.Name,
		Description: req.Description,
		TeamType:    teamType,
		OwnerId:     userId,
		Status:      model.TeamStatusActive,
		Members: []model.Membership{
			{
				UserId:   userId,
				Role:     model.RoleOwner,
				JoinedAt: now,
				Status:   model.MemberStatusActive,
			},
		},
		BrandAssignments: []model.BrandAssignment{},
	}

	if err := tl.teamRepo.CreateTeam(team); err != nil {
		log.Errorf("create team failed: %v", err)
		return nil, err
	}
	return team, nil
}

// ListTeams 列出用户参与的团队
func (tl *TeamLogic) ListTeams(userId string) ([]*model.Team, error) {
	return tl.teamRepo.GetTeamsByUserId(userId)
}

// GetTeam 获取团队详情，要求 can_view_team_details
func (tl *TeamLogic) GetTeam(teamId, userId string) (*model.Team, error) {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, err := RequireCapability(team, userId, model.CanViewTeamDetails); err != nil {
		return nil, err
	}
	return team, nil
}

// UpdateTeam 更新团队基础信息，要求 can_edit_team_details
func (tl *TeamLogic) UpdateTeam(teamId, userId string, req *model.UpdateTeamReq) error {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if _, err := RequireCapability(team, userId, model.CanEditTeamDetails); err != nil {
		return err
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if len(updates) == 0 {
		return nil
	}

	matched, err := tl.teamRepo.UpdateTeamDetails(teamId, updates)
	if err != nil {
		return err
	}
	if !matched {
		return ErrTeamNotFound
	}
	return nil
}

// DeleteTeam 归档团队，仅 owner 可执行
func (tl *TeamLogic) DeleteTeam(teamId, userId string) error {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if _, err := RequireCapability(team, userId, model.CanDeleteTeam); err != nil {
		return err
	}

	matched, err := tl.teamRepo.ArchiveTeam(teamId)
	if err != nil {
		return err
	}
	if !matched {
		return ErrTeamNotFound
	}
	return nil
}

// ListMembers 成员列表，要求 can_view_members_list，补充用户表展示字段
func (tl *TeamLogic) ListMembers(teamId, userId string) ([]*model.TeamMemberView, error) {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, err := RequireCapability(team, userId, model.CanViewMembersList); err != nil {
		return nil, err
	}

	var userIds []string
	for i := range team.Members {
		if team.Members[i].Status == model.MemberStatusActive {
			userIds = append(userIds, team.Members[i].UserId)
		}
	}

	users, err := tl.userRepo.GetUsersByIds(userIds)
	if err != nil {
		return nil, err
	}
	byId := make(map[string]*model.User, len(users))
	for _, u := range users {
		byId[u.UserId] = u
	}

	var views []*model.TeamMemberView
	for i := range team.Members {
		m := &team.Members[i]
		if m.Status != model.MemberStatusActive {
			continue
		}
		snapshot, err := ResolveCapabilities(team, m.UserId)
		if err != nil {
			// 成员在上面已筛过 active，这里不应发生
			log.Warnf("resolve capabilities for member %s failed: %v", m.UserId, err)
			continue
		}
		view := &model.TeamMemberView{
			UserId:   m.UserId,
			Role:     snapshot.UserRole,
			JoinedAt: m.JoinedAt,
			IsOwner:  snapshot.IsOwner,
			Caps:     snapshot.Capabilities,
		}
		if u, ok := byId[m.UserId]; ok {
			view.Username = u.Username
			view.FirstName = u.FirstName
			view.LastName = u.LastName
			view.Avatar = u.Avatar
			view.Email = u.Email
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateMemberRole 更新成员角色与显式授权，要求 can_update_member_roles
// owner 的角色结构上不可变更
func (tl *TeamLogic) UpdateMemberRole(teamId, actorId, targetId string, req *model.UpdateMemberRoleReq) error {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if _, err := RequireCapability(team, actorId, model.CanUpdateMemberRoles); err != nil {
		return err
	}
	if team.OwnerId == targetId {
		return ErrOwnerCannotBeRemoved
	}

	role, err := model.ParseTeamRole(req.Role)
	if err != nil {
		return err
	}
	if role == model.RoleOwner {
		// 所有权不通过该入口转移
		return ErrOwnerCannotBeRemoved
	}
	perms, err := model.ParsePermissions(req.Permissions)
	if err != nil {
		return err
	}

	matched, err := tl.teamRepo.UpdateMemberRole(teamId, targetId, role, perms)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotAMember
	}
	return nil
}

// RemoveMember 移除成员，要求 can_remove_members，owner 结构上不可移除
func (tl *TeamLogic) RemoveMember(teamId, actorId, targetId string) error {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if team.OwnerId == targetId {
		return ErrOwnerCannotBeRemoved
	}
	// 成员可以自行退出，否则需要移除能力
	if actorId != targetId {
		if _, err := RequireCapability(team, actorId, model.CanRemoveMembers); err != nil {
			return err
		}
	}

	matched, err := tl.teamRepo.RemoveMember(teamId, targetId)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotAMember
	}
	return nil
}

// GetCapabilities 返回用户在团队内的能力快照
func (tl *TeamLogic) GetCapabilities(teamId, userId string) (*model.CapabilitySnapshot, error) {
	team, err := tl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return ResolveCapabilities(team, userId)
}
