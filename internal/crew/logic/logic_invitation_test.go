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
	"testing"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	crewhttp "github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/datatypes"
)

// 内存实现，模拟仓储层的带条件更新语义

type fakeTeamRepo struct {
	teams map[string]*model.Team
}

func newFakeTeamRepo(teams ...*model.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[string]*model.Team)}
	for _, t := range teams {
		r.teams[t.TeamId] = t
	}
	return r
}

func (r *fakeTeamRepo) CreateTeam(team *model.Team) error {
	r.teams[team.TeamId] = team
	return nil
}

func (r *fakeTeamRepo) GetTeamById(teamId string) (*model.Team, error) {
	return r.teams[teamId], nil
}

func (r *fakeTeamRepo) GetTeamsByUserId(userId string) ([]*model.Team, error) {
	var out []*model.Team
	for _, t := range r.teams {
		if _, ok := t.ActiveMember(userId); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) UpdateTeamDetails(teamId string, updates bson.M) (bool, error) {
	t, ok := r.teams[teamId]
	if !ok || t.Status != model.TeamStatusActive {
		return false, nil
	}
	if name, ok := updates["name"].(string); ok {
		t.Name = name
	}
	if desc, ok := updates["description"].(string); ok {
		t.Description = desc
	}
	return true, nil
}

func (r *fakeTeamRepo) ArchiveTeam(teamId string) (bool, error) {
	t, ok := r.teams[teamId]
	if !ok || t.Status != model.TeamStatusActive {
		return false, nil
	}
	t.Status = model.TeamStatusArchived
	return true, nil
}

func (r *fakeTeamRepo) AddMember(teamId string, member *model.Membership) (bool, error) {
	t, ok := r.teams[teamId]
	if !ok {
		return false, nil
	}
	if _, ok := t.ActiveMember(member.UserId); ok {
		return false, nil
	}
	t.Members = append(t.Members, *member)
	return true, nil
}

func (r *fakeTeamRepo) UpdateMemberRole(teamId, userId string, role model.TeamRole, perms map[model.Capability]bool) (bool, error) {
	t, ok := r.teams[teamId]
	if !ok {
		return false, nil
	}
	for i := range t.Members {
		if t.Members[i].UserId == userId && t.Members[i].Status == model.MemberStatusActive {
			t.Members[i].Role = role
			t.Members[i].Permissions = perms
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) RemoveMember(teamId, userId string) (bool, error) {
	t, ok := r.teams[teamId]
	if !ok || t.OwnerId == userId {
		return false, nil
	}
	for i := range t.Members {
		if t.Members[i].UserId == userId && t.Members[i].Status == model.MemberStatusActive {
			t.Members[i].Status = model.MemberStatusRemoved
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) AddBrandAssignment(teamId string, assignment *model.BrandAssignment) (bool, error) {
	t, ok := r.teams[teamId]
	if !ok || t.HasActiveAssignment(assignment.BrandId) {
		return false, nil
	}
	t.BrandAssignments = append(t.BrandAssignments, *assignment)
	return true, nil
}

type fakeInvitationRepo struct {
	invs map[string]*model.Invitation
}

func newFakeInvitationRepo(invs ...*model.Invitation) *fakeInvitationRepo {
	r := &fakeInvitationRepo{invs: make(map[string]*model.Invitation)}
	for _, inv := range invs {
		r.invs[inv.InvitationId] = inv
	}
	return r
}

func (r *fakeInvitationRepo) CreateInvitation(inv *model.Invitation) error {
	r.invs[inv.InvitationId] = inv
	return nil
}

func (r *fakeInvitationRepo) GetByInvitationId(invitationId string) (*model.Invitation, error) {
	return r.invs[invitationId], nil
}

func (r *fakeInvitationRepo) GetPendingByTeamAndEmail(teamId, email string) (*model.Invitation, error) {
	for _, inv := range r.invs {
		if inv.TeamId == teamId && inv.InvitedEmail == email && inv.Status == statemachine.InvitationPending {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) ListByEmail(email string) ([]*model.Invitation, error) {
	var out []*model.Invitation
	for _, inv := range r.invs {
		if inv.InvitedEmail == email {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvitationRepo) ListByTeam(teamId string) ([]*model.Invitation, error) {
	var out []*model.Invitation
	for _, inv := range r.invs {
		if inv.TeamId == teamId {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvitationRepo) RefreshPending(invitationId string, role model.TeamRole, perms map[model.Capability]bool, message string, expiresAt time.Time) (bool, error) {
	inv, ok := r.invs[invitationId]
	if !ok || inv.Status != statemachine.InvitationPending {
		return false, nil
	}
	inv.Role = role
	inv.Permissions = perms
	inv.Message = message
	inv.ExpiresAt = expiresAt
	return true, nil
}

func (r *fakeInvitationRepo) Transit(invitationId string, from, to statemachine.InvitationStatus) (bool, error) {
	inv, ok := r.invs[invitationId]
	if !ok || inv.Status != from {
		return false, nil
	}
	inv.Status = to
	return true, nil
}

func (r *fakeInvitationRepo) DeletePending(teamId, invitationId string) (bool, error) {
	inv, ok := r.invs[invitationId]
	if !ok || inv.TeamId != teamId || inv.Status != statemachine.InvitationPending {
		return false, nil
	}
	delete(r.invs, invitationId)
	return true, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.UserId] = u
	}
	return r
}

func (r *fakeUserRepo) AddUser(user *model.User) error {
	r.users[user.UserId] = user
	return nil
}

func (r *fakeUserRepo) GetUserById(userId string) (*model.User, error) {
	return r.users[userId], nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUsersByIds(userIds []string) ([]*model.User, error) {
	var out []*model.User
	for _, id := range userIds {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(userId string, updates map[string]interface{}) error {
	u, ok := r.users[userId]
	if !ok {
		return nil
	}
	if prefs, ok := updates["preferences"].(datatypes.JSON); ok {
		u.Preferences = prefs
	}
	return nil
}

func (r *fakeUserRepo) SetToken(userId, aToken string, auth crewhttp.Auth) error { return nil }
func (r *fakeUserRepo) GetToken(key string) (string, error)                      { return "", nil }
func (r *fakeUserRepo) DelToken(key string) error                                { return nil }

func newInvitationFixture() (*InvitationLogic, *fakeTeamRepo, *fakeInvitationRepo, *fakeUserRepo) {
	team := testTeam()
	teamRepo := newFakeTeamRepo(team)
	invRepo := newFakeInvitationRepo()
	userRepo := newFakeUserRepo(
		&model.User{UserId: "owner-1", Username: "owner", Email: "owner@crew.dev", FirstName: "O", LastName: "Won"},
		&model.User{UserId: "admin-1", Username: "admin", Email: "admin@crew.dev"},
		&model.User{UserId: "member-1", Username: "member", Email: "member@crew.dev"},
		&model.User{UserId: "newbie-1", Username: "newbie", Email: "newbie@crew.dev"},
	)
	il := NewInvitationLogic(nil, invRepo, teamRepo, userRepo)
	return il, teamRepo, invRepo, userRepo
}

func TestInviteMember_RequiresCapability(t *testing.T) {
	il, _, _, _ := newInvitationFixture()

	_, err := il.InviteMember("team-1", "member-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	_, err = il.InviteMember("team-1", "stranger", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestInviteMember_RejectsUnknownPermissionKey(t *testing.T) {
	il, _, _, _ := newInvitationFixture()

	_, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{
		Email:       "newbie@crew.dev",
		Permissions: map[string]bool{"can_teleport": true},
	})
	assert.Error(t, err)
}

func TestInviteMember_AlreadyMember(t *testing.T) {
	il, _, _, _ := newInvitationFixture()

	_, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "Member@Crew.Dev"})
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestInviteMember_DuplicatePendingRefreshedInPlace(t *testing.T) {
	il, _, invRepo, _ := newInvitationFixture()

	first, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	require.NoError(t, err)

	second, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{
		Email: "NEWBIE@crew.dev",
		Role:  "admin",
	})
	require.NoError(t, err)

	assert.Equal(t, first.InvitationId, second.InvitationId, "pending invitation must be updated in place")
	assert.Equal(t, model.RoleAdmin, second.Role)
	assert.Len(t, invRepo.invs, 1)
}

func TestAccept_EmailMismatchLeavesStateUntouched(t *testing.T) {
	il, teamRepo, invRepo, _ := newInvitationFixture()

	inv, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	require.NoError(t, err)

	// admin-1 的邮箱与受邀邮箱不一致
	_, err = il.Accept(inv.InvitationId, "admin-1")
	assert.ErrorIs(t, err, ErrEmailMismatch)

	stored := invRepo.invs[inv.InvitationId]
	assert.Equal(t, statemachine.InvitationPending, stored.Status, "status must not change on mismatch")

	team := teamRepo.teams["team-1"]
	assert.Len(t, team.Members, 4, "no membership may be created on mismatch")
}

func TestAccept_ExpiredPendingInvitation(t *testing.T) {
	il, _, invRepo, _ := newInvitationFixture()

	inv, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	require.NoError(t, err)

	// 把有效期拨到过去，落库状态仍是 pending
	invRepo.invs[inv.InvitationId].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = il.Accept(inv.InvitationId, "newbie-1")
	assert.ErrorIs(t, err, ErrInvitationExpired)

	// 懒惰过期顺手翻转了落库状态
	assert.Equal(t, statemachine.InvitationExpired, invRepo.invs[inv.InvitationId].Status)
}

func TestAccept_FullScenario(t *testing.T) {
	il, teamRepo, _, _ := newInvitationFixture()

	inv, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{
		Email:       "NewBie@CREW.dev", // 大小写混写，匹配必须不区分大小写
		Role:        "member",
		Permissions: map[string]bool{"can_invite_members": true},
		Message:     "join us",
	})
	require.NoError(t, err)
	assert.Equal(t, "newbie@crew.dev", inv.InvitedEmail)

	accepted, err := il.Accept(inv.InvitationId, "newbie-1")
	require.NoError(t, err)
	assert.Equal(t, statemachine.InvitationAccepted, accepted.Status)

	team := teamRepo.teams["team-1"]
	member, ok := team.ActiveMember("newbie-1")
	require.True(t, ok, "acceptance must add an active membership")
	assert.Equal(t, model.RoleMember, member.Role)
	assert.True(t, member.Permissions[model.CanInviteMembers], "permissions frozen at invite time")

	// 新成员的能力快照：member 基线加上显式授权
	snapshot, err := ResolveCapabilities(team, "newbie-1")
	require.NoError(t, err)
	assert.True(t, snapshot.Capabilities[model.CanInviteMembers])
	assert.False(t, snapshot.Capabilities[model.CanDeleteTeam])

	// 已接受的邀请不能再次响应
	_, err = il.Accept(inv.InvitationId, "newbie-1")
	assert.Error(t, err)
}

func TestDecline(t *testing.T) {
	il, teamRepo, _, _ := newInvitationFixture()

	inv, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	require.NoError(t, err)

	declined, err := il.Decline(inv.InvitationId, "newbie-1")
	require.NoError(t, err)
	assert.Equal(t, statemachine.InvitationDeclined, declined.Status)

	_, ok := teamRepo.teams["team-1"].ActiveMember("newbie-1")
	assert.False(t, ok, "decline must not create a membership")
}

func TestListTeamInvitations_LazyExpiry(t *testing.T) {
	il, _, invRepo, _ := newInvitationFixture()

	inv, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	require.NoError(t, err)
	invRepo.invs[inv.InvitationId].ExpiresAt = time.Now().Add(-time.Minute)

	views, err := il.ListTeamInvitations("team-1", "owner-1")
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.True(t, views[0].IsExpired)
	assert.False(t, views[0].CanAccept)
	assert.Equal(t, statemachine.InvitationExpired, views[0].Status)
}

func TestCancelInvitation(t *testing.T) {
	il, _, invRepo, _ := newInvitationFixture()

	inv, err := il.InviteMember("team-1", "owner-1", &model.InviteMemberReq{Email: "newbie@crew.dev"})
	require.NoError(t, err)

	err = il.CancelInvitation("team-1", inv.InvitationId, "member-1")
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	err = il.CancelInvitation("team-1", inv.InvitationId, "admin-1")
	require.NoError(t, err)
	assert.Empty(t, invRepo.invs)
}
