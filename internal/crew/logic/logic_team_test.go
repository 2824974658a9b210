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

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTeamFixture() (*TeamLogic, *fakeTeamRepo, *fakeUserRepo) {
	team := testTeam()
	teamRepo := newFakeTeamRepo(team)
	userRepo := newFakeUserRepo(
		&model.User{UserId: "owner-1", Username: "owner", Email: "owner@crew.dev"},
		&model.User{UserId: "admin-1", Username: "admin", Email: "admin@crew.dev"},
		&model.User{UserId: "member-1", Username: "member", Email: "member@crew.dev"},
	)
	tl := NewTeamLogic(nil, teamRepo, userRepo)
	return tl, teamRepo, userRepo
}

func TestCreateTeam_CreatorIsOwner(t *testing.T) {
	tl, teamRepo, _ := newTeamFixture()

	team, err := tl.CreateTeam("owner-9", &model.CreateTeamReq{Name: "fresh"})
	require.NoError(t, err)

	assert.Equal(t, "owner-9", team.OwnerId)
	assert.Equal(t, model.TeamTypeStandard, team.TeamType)
	require.Len(t, team.Members, 1)
	assert.Equal(t, model.RoleOwner, team.Members[0].Role)
	assert.Equal(t, model.MemberStatusActive, team.Members[0].Status)
	assert.Contains(t, teamRepo.teams, team.TeamId)
}

func TestGetTeam_NotFoundAndAccess(t *testing.T) {
	tl, _, _ := newTeamFixture()

	_, err := tl.GetTeam("missing", "owner-1")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = tl.GetTeam("team-1", "stranger")
	assert.ErrorIs(t, err, ErrNotAMember)

	team, err := tl.GetTeam("team-1", "member-1")
	require.NoError(t, err)
	assert.Equal(t, "team-1", team.TeamId)
}

func TestUpdateTeam_RequiresEditCapability(t *testing.T) {
	tl, teamRepo, _ := newTeamFixture()

	err := tl.UpdateTeam("team-1", "member-1", &model.UpdateTeamReq{Name: "renamed"})
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	err = tl.UpdateTeam("team-1", "admin-1", &model.UpdateTeamReq{Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", teamRepo.teams["team-1"].Name)
}

func TestDeleteTeam_OwnerOnly(t *testing.T) {
	tl, teamRepo, _ := newTeamFixture()

	err := tl.DeleteTeam("team-1", "admin-1")
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	err = tl.DeleteTeam("team-1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, model.TeamStatusArchived, teamRepo.teams["team-1"].Status)
}

func TestRemoveMember_OwnerStructurallyIrremovable(t *testing.T) {
	tl, _, _ := newTeamFixture()

	err := tl.RemoveMember("team-1", "admin-1", "owner-1")
	assert.ErrorIs(t, err, ErrOwnerCannotBeRemoved)

	// admin 自己也不能把 owner 移掉，哪怕仓储层被直接调用也会被过滤条件挡住
	err = tl.RemoveMember("team-1", "owner-1", "owner-1")
	assert.ErrorIs(t, err, ErrOwnerCannotBeRemoved)
}

func TestRemoveMember(t *testing.T) {
	tl, teamRepo, _ := newTeamFixture()

	// member 没有移除能力
	err := tl.RemoveMember("team-1", "member-1", "admin-1")
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	// 成员可以自行退出
	err = tl.RemoveMember("team-1", "member-1", "member-1")
	require.NoError(t, err)

	_, ok := teamRepo.teams["team-1"].ActiveMember("member-1")
	assert.False(t, ok)
}

func TestUpdateMemberRole(t *testing.T) {
	tl, teamRepo, _ := newTeamFixture()

	// owner 角色不可通过该入口变更
	err := tl.UpdateMemberRole("team-1", "admin-1", "owner-1", &model.UpdateMemberRoleReq{Role: "member"})
	assert.ErrorIs(t, err, ErrOwnerCannotBeRemoved)

	// 未知角色被拒绝
	err = tl.UpdateMemberRole("team-1", "owner-1", "member-1", &model.UpdateMemberRoleReq{Role: "emperor"})
	assert.Error(t, err)

	// 未知授权 key 被拒绝
	err = tl.UpdateMemberRole("team-1", "owner-1", "member-1", &model.UpdateMemberRoleReq{
		Role:        "member",
		Permissions: map[string]bool{"can_rule": true},
	})
	assert.Error(t, err)

	err = tl.UpdateMemberRole("team-1", "owner-1", "member-1", &model.UpdateMemberRoleReq{
		Role:        "admin",
		Permissions: map[string]bool{"can_invite_members": true},
	})
	require.NoError(t, err)

	member, ok := teamRepo.teams["team-1"].ActiveMember("member-1")
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, member.Role)
}

func TestListMembers(t *testing.T) {
	tl, _, _ := newTeamFixture()

	_, err := tl.ListMembers("team-1", "stranger")
	assert.ErrorIs(t, err, ErrNotAMember)

	views, err := tl.ListMembers("team-1", "member-1")
	require.NoError(t, err)
	// removed 成员不出现在列表里
	assert.Len(t, views, 3)

	for _, v := range views {
		if v.UserId == "owner-1" {
			assert.True(t, v.IsOwner)
			assert.Equal(t, "owner", v.Username)
		}
	}
}

func TestGetCapabilities(t *testing.T) {
	tl, _, _ := newTeamFixture()

	snapshot, err := tl.GetCapabilities("team-1", "admin-1")
	require.NoError(t, err)
	assert.True(t, snapshot.IsAdmin)
	assert.False(t, snapshot.Capabilities[model.CanDeleteTeam])

	_, err = tl.GetCapabilities("team-1", "stranger")
	assert.ErrorIs(t, err, ErrNotAMember)
}
