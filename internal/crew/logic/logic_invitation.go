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
	"fmt"
	"strings"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/id"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-crew/crew/pkg/statemachine"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 21:10
 * @file: logic_invitation.go
 * @description: invitation logic
 *
 * 过期是读取时计算的：get/list/accept/decline 都先看 expires_at，
 * 落库状态滞后时顺手翻转，翻转失败不影响本次读取结果
 */

// 邀请有效期
const invitationTTL = 7 * 24 * time.Hour

type InvitationLogic struct {
	ctx            *ctx.Context
	invitationRepo repo.IInvitationRepository
	teamRepo       repo.ITeamRepository
	userRepo       repo.IUserRepository
}

func NewInvitationLogic(ctx *ctx.Context, invitationRepo repo.IInvitationRepository, teamRepo repo.ITeamRepository, userRepo repo.IUserRepository) *InvitationLogic {
	return &InvitationLogic{
		ctx:            ctx,
		invitationRepo: invitationRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
	}
}

// InviteMember 邀请新成员，要求 can_invite_members
// 同团队同邮箱已有 pending 邀请时原地刷新，不产生第二条
func (il *InvitationLogic) InviteMember(teamId, actorId string, req *model.InviteMemberReq) (*model.Invitation, error) {
	team, err := il.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, err := RequireCapability(team, actorId, model.CanInviteMembers); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	roleStr := req.Role
	if roleStr == "" {
		roleStr = string(model.RoleMember)
	}
	role, err := model.ParseTeamRole(roleStr)
	if err != nil {
		return nil, err
	}
	if role == model.RoleOwner {
		return nil, fmt.Errorf("cannot invite a user as owner")
	}
	perms, err := model.ParsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	// 受邀邮箱已是 active 成员时直接拒绝
	if invited, err := il.userRepo.GetUserByEmail(email); err != nil {
		return nil, err
	} else if invited != nil {
		if _, ok := team.ActiveMember(invited.UserId); ok {
			return nil, ErrAlreadyMember
		}
	}

	expiresAt := time.Now().Add(invitationTTL)

	// 已有 pending 邀请则原地刷新
	existing, err := il.invitationRepo.GetPendingByTeamAndEmail(teamId, email)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsExpired(time.Now()) {
		matched, err := il.invitationRepo.RefreshPending(existing.InvitationId, role, perms, req.Message, expiresAt)
		if err != nil {
			return nil, err
		}
		if matched {
			existing.Role = role
			existing.Permissions = perms
			existing.Message = req.Message
			existing.ExpiresAt = expiresAt
			return existing, nil
		}
		// pending 在中途被响应掉了，走新建
	}

	inviter, err := il.userRepo.GetUserById(actorId)
	if err != nil {
		return nil, err
	}

	inv := &model.Invitation{
		InvitationId: id.GetHex(12),
		TeamId:       team.TeamId,
		TeamName:     team.Name,
		InvitedEmail: email,
		InvitedBy:    actorId,
		Role:         role,
		Permissions:  perms,
		Message:      req.Message,
		Status:       statemachine.InvitationPending,
		ExpiresAt:    expiresAt,
	}
	if inviter != nil {
		inv.InviterName = strings.TrimSpace(inviter.FirstName + " " + inviter.LastName)
		inv.InviterEmail = inviter.Email
	}

	if err := il.invitationRepo.CreateInvitation(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Accept 接受邀请
// 成员记录使用邀请创建时冻结的角色与授权，不按当前基线重算
func (il *InvitationLogic) Accept(invitationId, userId string) (*model.Invitation, error) {
	inv, err := il.loadActionable(invitationId)
	if err != nil {
		return nil, err
	}

	user, err := il.userRepo.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if user == nil || !strings.EqualFold(user.Email, inv.InvitedEmail) {
		return nil, ErrEmailMismatch
	}

	team, err := il.teamRepo.GetTeamById(inv.TeamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, ok := team.ActiveMember(userId); ok {
		return nil, ErrAlreadyMember
	}

	// pending 条件即 CAS，并发响应时只有一个赢家
	matched, err := il.invitationRepo.Transit(invitationId, statemachine.InvitationPending, statemachine.InvitationAccepted)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrInvitationClosed
	}

	member := &model.Membership{
		UserId:      userId,
		Role:        inv.Role,
		Permissions: inv.Permissions,
		JoinedAt:    time.Now(),
		Status:      model.MemberStatusActive,
	}
	added, err := il.teamRepo.AddMember(inv.TeamId, member)
	if err != nil {
		return nil, err
	}
	if !added {
		// 过滤条件未命中：并发下已成为成员
		log.Warnf("accepted invitation %s but user %s already a member of %s", invitationId, userId, inv.TeamId)
	}

	inv.Status = statemachine.InvitationAccepted
	return inv, nil
}

// Decline 拒绝邀请，镜像 Accept 但不产生成员
func (il *InvitationLogic) Decline(invitationId, userId string) (*model.Invitation, error) {
	inv, err := il.loadActionable(invitationId)
	if err != nil {
		return nil, err
	}

	user, err := il.userRepo.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if user == nil || !strings.EqualFold(user.Email, inv.InvitedEmail) {
		return nil, ErrEmailMismatch
	}

	matched, err := il.invitationRepo.Transit(invitationId, statemachine.InvitationPending, statemachine.InvitationDeclined)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrInvitationClosed
	}

	inv.Status = statemachine.InvitationDeclined
	return inv, nil
}

// loadActionable 读取并校验邀请仍可被响应，过期在这里统一判定
func (il *InvitationLogic) loadActionable(invitationId string) (*model.Invitation, error) {
	inv, err := il.invitationRepo.GetByInvitationId(invitationId)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}

	now := time.Now()
	if inv.Status == statemachine.InvitationPending && inv.IsExpired(now) {
		il.flipExpired(inv.InvitationId)
		return nil, ErrInvitationExpired
	}

	sm := statemachine.NewInvitationStateMachine()
	sm.SetCurrent(inv.Status)
	if !sm.Is(statemachine.InvitationPending) {
		if inv.Status == statemachine.InvitationExpired {
			return nil, ErrInvitationExpired
		}
		return nil, ErrInvitationClosed
	}
	return inv, nil
}

// flipExpired 顺手把滞后的 pending 状态翻成 expired，失败只记日志
func (il *InvitationLogic) flipExpired(invitationId string) {
	if _, err := il.invitationRepo.Transit(invitationId, statemachine.InvitationPending, statemachine.InvitationExpired); err != nil {
		log.Warnf("flip invitation %s to expired failed: %v", invitationId, err)
	}
}

// GetInvitation 邀请详情，带读取时刻的 is_expired / can_accept
func (il *InvitationLogic) GetInvitation(invitationId string) (*model.InvitationView, error) {
	inv, err := il.invitationRepo.GetByInvitationId(invitationId)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}

	now := time.Now()
	if inv.Status == statemachine.InvitationPending && inv.IsExpired(now) {
		il.flipExpired(inv.InvitationId)
	}
	view := inv.ToView(now)
	return &view, nil
}

// ListMyInvitations 列出发给当前用户邮箱的邀请，过期同样在读取时判定
func (il *InvitationLogic) ListMyInvitations(userId string) ([]model.InvitationView, error) {
	user, err := il.userRepo.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	invs, err := il.invitationRepo.ListByEmail(strings.ToLower(user.Email))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]model.InvitationView, 0, len(invs))
	for _, inv := range invs {
		if inv.Status == statemachine.InvitationPending && inv.IsExpired(now) {
			il.flipExpired(inv.InvitationId)
		}
		views = append(views, inv.ToView(now))
	}
	return views, nil
}

// ListTeamInvitations 团队邀请列表，要求 can_view_pending_invitations
func (il *InvitationLogic) ListTeamInvitations(teamId, actorId string) ([]model.InvitationView, error) {
	team, err := il.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, err := RequireCapability(team, actorId, model.CanViewPendingInvitations); err != nil {
		return nil, err
	}

	invs, err := il.invitationRepo.ListByTeam(teamId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]model.InvitationView, 0, len(invs))
	for _, inv := range invs {
		if inv.Status == statemachine.InvitationPending && inv.IsExpired(now) {
			il.flipExpired(inv.InvitationId)
		}
		views = append(views, inv.ToView(now))
	}
	return views, nil
}

// CancelInvitation 取消 pending 邀请，要求 can_cancel_invitations
func (il *InvitationLogic) CancelInvitation(teamId, invitationId, actorId string) error {
	team, err := il.teamRepo.GetTeamById(teamId)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if _, err := RequireCapability(team, actorId, model.CanCancelInvitations); err != nil {
		return err
	}

	deleted, err := il.invitationRepo.DeletePending(teamId, invitationId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvitationNotFound
	}
	return nil
}
