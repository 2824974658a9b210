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
	"errors"
	"testing"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTeam() *model.Team {
	now := time.Now()
	return &model.Team{
		TeamId:   "team-1",
		Name:     "content crew",
		TeamType: model.TeamTypeStandard,
		OwnerId:  "owner-1",
		Status:   model.TeamStatusActive,
		Members: []model.Membership{
			{UserId: "owner-1", Role: model.RoleOwner, JoinedAt: now, Status: model.MemberStatusActive},
			{UserId: "admin-1", Role: model.RoleAdmin, JoinedAt: now, Status: model.MemberStatusActive},
			{UserId: "member-1", Role: model.RoleMember, JoinedAt: now, Status: model.MemberStatusActive},
			{UserId: "gone-1", Role: model.RoleMember, JoinedAt: now, Status: model.MemberStatusRemoved},
		},
	}
}

func TestResolveCapabilities_NotAMember(t *testing.T) {
	team := testTeam()

	_, err := ResolveCapabilities(team, "stranger")
	assert.ErrorIs(t, err, ErrNotAMember)

	// removed 成员同样按非成员处理
	_, err = ResolveCapabilities(team, "gone-1")
	assert.ErrorIs(t, err, ErrNotAMember)
}

func TestResolveCapabilities_ActiveMembersNeverRejected(t *testing.T) {
	team := testTeam()
	for _, userId := range []string{"owner-1", "admin-1", "member-1"} {
		_, err := ResolveCapabilities(team, userId)
		assert.NoError(t, err, "user %s", userId)
	}
}

func TestResolveCapabilities_DeleteTeamByRole(t *testing.T) {
	team := testTeam()

	tests := []struct {
		userId string
		want   bool
	}{
		{"owner-1", true},
		{"admin-1", false},
		{"member-1", false},
	}
	for _, tt := range tests {
		snapshot, err := ResolveCapabilities(team, tt.userId)
		require.NoError(t, err)
		assert.Equal(t, tt.want, snapshot.Capabilities[model.CanDeleteTeam], "user %s", tt.userId)
	}
}

func TestResolveCapabilities_RoleFlags(t *testing.T) {
	team := testTeam()

	owner, err := ResolveCapabilities(team, "owner-1")
	require.NoError(t, err)
	assert.True(t, owner.IsOwner)
	assert.False(t, owner.IsAdmin)
	assert.Equal(t, model.RoleOwner, owner.UserRole)

	admin, err := ResolveCapabilities(team, "admin-1")
	require.NoError(t, err)
	assert.False(t, admin.IsOwner)
	assert.True(t, admin.IsAdmin)
}

func TestResolveCapabilities_GrantsWidenOnly(t *testing.T) {
	team := testTeam()
	team.Members[2].Permissions = map[model.Capability]bool{
		model.CanInviteMembers:   true,
		model.CanViewTeamDetails: false, // false 不得收窄角色基线
	}

	snapshot, err := ResolveCapabilities(team, "member-1")
	require.NoError(t, err)

	assert.True(t, snapshot.Capabilities[model.CanInviteMembers], "explicit true grant must widen")
	assert.True(t, snapshot.Capabilities[model.CanViewTeamDetails], "explicit false must not narrow role baseline")
	assert.False(t, snapshot.Capabilities[model.CanDeleteTeam])
}

func TestResolveCapabilities_HintProjectionTotal(t *testing.T) {
	team := testTeam()

	for _, userId := range []string{"owner-1", "admin-1", "member-1"} {
		snapshot, err := ResolveCapabilities(team, userId)
		require.NoError(t, err)

		assert.Len(t, snapshot.UIHints, len(model.HintProjection))
		for hint, cap := range model.HintProjection {
			assert.Equal(t, snapshot.Capabilities[cap], snapshot.UIHints[hint],
				"hint %s must mirror %s for %s", hint, cap, userId)
		}
	}
}

func TestResolveCapabilities_OwnerKeepsTeamCapabilities(t *testing.T) {
	team := testTeam()
	// owner 在某品牌上只有 viewer 角色
	team.BrandAssignments = []model.BrandAssignment{
		{BrandId: "brand-1", BrandName: "acme", Role: model.BrandRoleViewer, Status: model.AssignmentStatusActive},
	}
	// 成员记录上角色被写成 member，owner_id 仍应胜出
	team.Members[0].Role = model.RoleMember

	snapshot, err := ResolveCapabilities(team, "owner-1")
	require.NoError(t, err)
	assert.True(t, snapshot.IsOwner)
	for _, c := range model.AllCapabilities {
		assert.True(t, snapshot.Capabilities[c], "owner must keep %s", c)
	}
}

func TestRequireCapability(t *testing.T) {
	team := testTeam()

	_, err := RequireCapability(team, "member-1", model.CanInviteMembers)
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	snapshot, err := RequireCapability(team, "admin-1", model.CanInviteMembers)
	require.NoError(t, err)
	assert.True(t, snapshot.IsAdmin)

	_, err = RequireCapability(team, "stranger", model.CanViewTeamDetails)
	if !errors.Is(err, ErrNotAMember) {
		t.Errorf("expected ErrNotAMember, got %v", err)
	}
}
