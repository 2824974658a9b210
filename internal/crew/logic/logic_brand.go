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
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/id"
	"github.com/go-crew/crew/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 22:02
 * @file: logic_brand.go
 * @description: brand logic
 */

type BrandLogic struct {
	ctx       *ctx.Context
	brandRepo repo.IBrandRepository
	teamRepo  repo.ITeamRepository
}

func NewBrandLogic(ctx *ctx.Context, brandRepo repo.IBrandRepository, teamRepo repo.ITeamRepository) *BrandLogic {
	return &BrandLogic{
		ctx:       ctx,
		brandRepo: brandRepo,
		teamRepo:  teamRepo,
	}
}

// CreateBrand 创建品牌
func (bl *BrandLogic) CreateBrand(userId string, req *model.CreateBrandReq) (*model.Brand, error) {
	brand := &model.Brand{
		BrandId:     id.GetHex(12),
		Name:        req.Name,
		Description: req.Description,
		OwnerId:     userId,
		TeamMembers: []model.BrandMember{},
	}
	if err := bl.brandRepo.CreateBrand(brand); err != nil {
		log.Errorf("create brand failed: %v", err)
		return nil, err
	}
	return brand, nil
}

// AssignBrand 把品牌分配给团队，要求 can_assign_brands
// 同一品牌已有 active 分配时拒绝，重复分配由仓储层过滤条件兜底
func (bl *BrandLogic) AssignBrand(teamId, actorId string, req *model.AssignBrandReq) (*model.BrandAssignment, error) {
	team, err := bl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, err := RequireCapability(team, actorId, model.CanAssignBrands); err != nil {
		return nil, err
	}

	role, ok := model.ParseBrandRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("unknown brand role: %q", req.Role)
	}
	perms, err := model.ParsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	brand, err := bl.brandRepo.GetBrandById(req.BrandId)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	if team.HasActiveAssignment(brand.BrandId) {
		return nil, ErrDuplicateAssignment
	}

	assignment := &model.BrandAssignment{
		BrandId:    brand.BrandId,
		BrandName:  brand.Name,
		Role:       role,
		AssignedBy: actorId,
		AssignedAt: time.Now(),
		Status:     model.AssignmentStatusActive,
	}

	added, err := bl.teamRepo.AddBrandAssignment(teamId, assignment)
	if err != nil {
		return nil, err
	}
	if !added {
		// 读到写之间有并发分配，过滤条件未命中
		return nil, ErrDuplicateAssignment
	}

	// 团队成员同步进品牌成员表，失败不回滚分配
	var members []model.BrandMember
	now := time.Now()
	for i := range team.Members {
		m := &team.Members[i]
		if m.Status != model.MemberStatusActive {
			continue
		}
		members = append(members, model.BrandMember{
			UserId:      m.UserId,
			Role:        role,
			TeamId:      team.TeamId,
			Permissions: perms,
			AddedAt:     now,
		})
	}
	if _, err := bl.brandRepo.AddTeamMembers(brand.BrandId, members); err != nil {
		log.Warnf("sync team %s members to brand %s failed: %v", teamId, brand.BrandId, err)
	}

	return assignment, nil
}

// ListTeamBrands 团队的品牌分配列表，要求 can_view_brand_assignments
func (bl *BrandLogic) ListTeamBrands(teamId, userId string) ([]model.BrandAssignment, error) {
	team, err := bl.teamRepo.GetTeamById(teamId)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if _, err := RequireCapability(team, userId, model.CanViewBrandAssignments); err != nil {
		return nil, err
	}

	active := make([]model.BrandAssignment, 0, len(team.BrandAssignments))
	for _, a := range team.BrandAssignments {
		if a.Status == model.AssignmentStatusActive {
			active = append(active, a)
		}
	}
	return active, nil
}
