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

import "fmt"

// TeamRole 团队角色
type TeamRole string

const (
	RoleOwner  TeamRole = "owner"
	RoleAdmin  TeamRole = "admin"
	RoleMember TeamRole = "member"
)

// ParseTeamRole 校验角色字符串
func ParseTeamRole(s string) (TeamRole, error) {
	switch TeamRole(s) {
	case RoleOwner, RoleAdmin, RoleMember:
		return TeamRole(s), nil
	default:
		return "", fmt.Errorf("unknown team role: %q", s)
	}
}

// Capability 单项能力
type Capability string

const (
	// 团队管理
	CanInviteMembers     Capability = "can_invite_members"
	CanRemoveMembers     Capability = "can_remove_members"
	CanUpdateMemberRoles Capability = "can_update_member_roles"
	CanDeleteTeam        Capability = "can_delete_team"
	CanEditTeamDetails   Capability = "can_edit_team_details"

	// 品牌管理
	CanAssignBrands         Capability = "can_assign_brands"
	CanViewBrandAssignments Capability = "can_view_brand_assignments"

	// 数据与查看
	CanViewTeamAnalytics      Capability = "can_view_team_analytics"
	CanViewTeamDetails        Capability = "can_view_team_details"
	CanViewMembersList        Capability = "can_view_members_list"
	CanViewPerformanceReports Capability = "can_view_performance_reports"

	// 项目
	CanCreateProjects Capability = "can_create_projects"

	// 设置
	CanManageTeamSettings Capability = "can_manage_team_settings"

	// 邀请
	CanViewPendingInvitations Capability = "can_view_pending_invitations"
	CanCancelInvitations      Capability = "can_cancel_invitations"
)

// AllCapabilities 全量能力清单，顺序固定
var AllCapabilities = []Capability{
	CanInviteMembers,
	CanRemoveMembers,
	CanUpdateMemberRoles,
	CanDeleteTeam,
	CanEditTeamDetails,
	CanAssignBrands,
	CanViewBrandAssignments,
	CanViewTeamAnalytics,
	CanViewTeamDetails,
	CanViewMembersList,
	CanViewPerformanceReports,
	CanCreateProjects,
	CanManageTeamSettings,
	CanViewPendingInvitations,
	CanCancelInvitations,
}

var capabilitySet = func() map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(AllCapabilities))
	for _, c := range AllCapabilities {
		m[c] = struct{}{}
	}
	return m
}()

// ParseCapability 校验能力名，未知 key 直接拒绝
func ParseCapability(s string) (Capability, error) {
	c := Capability(s)
	if _, ok := capabilitySet[c]; !ok {
		return "", fmt.Errorf("unknown permission key: %q", s)
	}
	return c, nil
}

// ParsePermissions 校验一组显式授权，任意未知 key 使整组失败
func ParsePermissions(raw map[string]bool) (map[Capability]bool, error) {
	if len(raw) == 0 {
		return map[Capability]bool{}, nil
	}
	perms := make(map[Capability]bool, len(raw))
	for k, v := range raw {
		c, err := ParseCapability(k)
		if err != nil {
			return nil, err
		}
		perms[c] = v
	}
	return perms, nil
}

// UIHint 客户端渲染提示
type UIHint string

const (
	ShowInviteButton       UIHint = "show_invite_button"
	ShowRemoveMemberButton UIHint = "show_remove_member_button"
	ShowEditRoleButton     UIHint = "show_edit_role_button"
	ShowDeleteTeamButton   UIHint = "show_delete_team_button"
	ShowTeamSettings       UIHint = "show_team_settings"
	ShowAssignBrandButton  UIHint = "show_assign_brand_button"
	ShowAnalyticsTab       UIHint = "show_analytics_tab"
	ShowPerformanceReports UIHint = "show_performance_reports"
	ShowInviteManagement   UIHint = "show_invite_management"
)

// HintProjection 每个提示与一项能力一一对应，映射固定且全量
var HintProjection = map[UIHint]Capability{
	ShowInviteButton:       CanInviteMembers,
	ShowRemoveMemberButton: CanRemoveMembers,
	ShowEditRoleButton:     CanUpdateMemberRoles,
	ShowDeleteTeamButton:   CanDeleteTeam,
	ShowTeamSettings:       CanManageTeamSettings,
	ShowAssignBrandButton:  CanAssignBrands,
	ShowAnalyticsTab:       CanViewTeamAnalytics,
	ShowPerformanceReports: CanViewPerformanceReports,
	ShowInviteManagement:   CanViewPendingInvitations,
}

// CapabilitySnapshot 按需计算的能力快照，从不落库
type CapabilitySnapshot struct {
	UserRole     TeamRole            `json:"user_role"`
	IsOwner      bool                `json:"is_owner"`
	IsAdmin      bool                `json:"is_admin"`
	Capabilities map[Capability]bool `json:"capabilities"`
	UIHints      map[UIHint]bool     `json:"ui_hints"`
}

// RoleBaseline 角色的基础能力集
// owner 全量，admin 除 can_delete_team 外全量，member 仅查看类
func RoleBaseline(role TeamRole) map[Capability]bool {
	caps := make(map[Capability]bool, len(AllCapabilities))
	switch role {
	case RoleOwner:
		for _, c := range AllCapabilities {
			caps[c] = true
		}
	case RoleAdmin:
		for _, c := range AllCapabilities {
			caps[c] = c != CanDeleteTeam
		}
	default:
		for _, c := range AllCapabilities {
			caps[c] = false
		}
		caps[CanViewTeamDetails] = true
		caps[CanViewMembersList] = true
		caps[CanViewTeamAnalytics] = true
		caps[CanViewBrandAssignments] = true
	}
	return caps
}
