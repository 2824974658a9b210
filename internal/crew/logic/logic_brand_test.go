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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBrandRepo struct {
	brands map[string]*model.Brand
}

func newFakeBrandRepo(brands ...*model.Brand) *fakeBrandRepo {
	r := &fakeBrandRepo{brands: make(map[string]*model.Brand)}
	for _, b := range brands {
		r.brands[b.BrandId] = b
	}
	return r
}

func (r *fakeBrandRepo) CreateBrand(brand *model.Brand) error {
	r.brands[brand.BrandId] = brand
	return nil
}

func (r *fakeBrandRepo) GetBrandById(brandId string) (*model.Brand, error) {
	return r.brands[brandId], nil
}

func (r *fakeBrandRepo) AddTeamMembers(brandId string, members []model.BrandMember) (bool, error) {
	b, ok := r.brands[brandId]
	if !ok {
		return false, nil
	}
	for _, m := range members {
		refreshed := false
		for i := range b.TeamMembers {
			if b.TeamMembers[i].UserId == m.UserId {
				b.TeamMembers[i].Role = m.Role
				b.TeamMembers[i].TeamId = m.TeamId
				b.TeamMembers[i].Permissions = m.Permissions
				refreshed = true
				break
			}
		}
		if !refreshed {
			b.TeamMembers = append(b.TeamMembers, m)
		}
	}
	return true, nil
}

func newBrandFixture() (*BrandLogic, *fakeTeamRepo, *fakeBrandRepo) {
	team := testTeam()
	teamRepo := newFakeTeamRepo(team)
	brandRepo := newFakeBrandRepo(&model.Brand{
		BrandId: "brand-1",
		Name:    "acme",
		OwnerId: "owner-1",
	})
	bl := NewBrandLogic(nil, brandRepo, teamRepo)
	return bl, teamRepo, brandRepo
}

func TestAssignBrand_RequiresCapability(t *testing.T) {
	bl, _, _ := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "member-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "editor"})
	assert.ErrorIs(t, err, ErrInsufficientCapability)
}

func TestAssignBrand_DuplicateActiveAssignment(t *testing.T) {
	bl, teamRepo, _ := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "editor"})
	require.NoError(t, err)

	_, err = bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "viewer"})
	assert.ErrorIs(t, err, ErrDuplicateAssignment)

	assert.Len(t, teamRepo.teams["team-1"].BrandAssignments, 1)
}

func TestAssignBrand_RevokedAssignmentCanBeReassigned(t *testing.T) {
	bl, teamRepo, _ := newBrandFixture()

	team := teamRepo.teams["team-1"]
	team.BrandAssignments = []model.BrandAssignment{
		{BrandId: "brand-1", BrandName: "acme", Role: model.BrandRoleEditor, Status: model.AssignmentStatusRevoked, AssignedAt: time.Now().Add(-time.Hour)},
	}

	assignment, err := bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "uploader"})
	require.NoError(t, err)
	assert.Equal(t, model.BrandRoleUploader, assignment.Role)
	assert.Equal(t, model.AssignmentStatusActive, assignment.Status)
}

func TestAssignBrand_SyncsBrandMembers(t *testing.T) {
	bl, _, brandRepo := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "admin-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "editor"})
	require.NoError(t, err)

	// 3 个 active 成员被同步，removed 成员不同步
	assert.Len(t, brandRepo.brands["brand-1"].TeamMembers, 3)
}

func TestAssignBrand_CarriesPermissionsToBrandMembers(t *testing.T) {
	bl, _, brandRepo := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{
		BrandId:     "brand-1",
		Role:        "editor",
		Permissions: map[string]bool{"can_view_team_analytics": true},
	})
	require.NoError(t, err)

	for _, m := range brandRepo.brands["brand-1"].TeamMembers {
		assert.True(t, m.Permissions[model.CanViewTeamAnalytics], "member %s missing granted permission", m.UserId)
	}
}

func TestAssignBrand_UnknownPermissionKeyRejected(t *testing.T) {
	bl, teamRepo, _ := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{
		BrandId:     "brand-1",
		Role:        "editor",
		Permissions: map[string]bool{"can_fly": true},
	})
	assert.Error(t, err)
	assert.Empty(t, teamRepo.teams["team-1"].BrandAssignments)
}

func TestAssignBrand_ReassignDoesNotDuplicateBrandMembers(t *testing.T) {
	bl, teamRepo, brandRepo := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "editor"})
	require.NoError(t, err)

	// 吊销后重新分配，品牌成员表按 user_id 原地更新而不是追加
	team := teamRepo.teams["team-1"]
	team.BrandAssignments[0].Status = model.AssignmentStatusRevoked

	_, err = bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "uploader"})
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, m := range brandRepo.brands["brand-1"].TeamMembers {
		seen[m.UserId]++
		assert.Equal(t, model.BrandRoleUploader, m.Role)
	}
	for userId, n := range seen {
		assert.Equal(t, 1, n, "brand member %s appears %d times", userId, n)
	}
	assert.Len(t, brandRepo.brands["brand-1"].TeamMembers, 3)
}

func TestAssignBrand_UnknownBrandRole(t *testing.T) {
	bl, _, _ := newBrandFixture()

	_, err := bl.AssignBrand("team-1", "owner-1", &model.AssignBrandReq{BrandId: "brand-1", Role: "king"})
	assert.Error(t, err)
}

func TestListTeamBrands_FiltersRevoked(t *testing.T) {
	bl, teamRepo, _ := newBrandFixture()

	team := teamRepo.teams["team-1"]
	team.BrandAssignments = []model.BrandAssignment{
		{BrandId: "brand-1", Status: model.AssignmentStatusActive},
		{BrandId: "brand-2", Status: model.AssignmentStatusRevoked},
	}

	brands, err := bl.ListTeamBrands("team-1", "member-1")
	require.NoError(t, err)
	assert.Len(t, brands, 1)
	assert.Equal(t, "brand-1", brands[0].BrandId)
}
