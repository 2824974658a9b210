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
	"github.com/go-crew/crew/internal/crew/model"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/12 20:10
 * @file: logic_capability.go
 * @description: 能力解析器
 */

// ResolveCapabilities 计算用户在团队内的能力快照
//
// 1. 找到 active 成员记录，不存在即 ErrNotAMember，从不降级为只读角色
// 2. 角色基线：owner 全量，admin 除删除团队外全量，member 仅查看类
// 3. 叠加显式授权：true 扩权，false 不收窄角色基线
// 4. UI 提示是能力的固定全量投影
//
// 纯函数，不触碰任何持久状态。团队 owner 即使在某个品牌上
// 被分配了较低角色，团队级能力也不受影响
func ResolveCapabilities(team *model.Team, userId string) (*model.CapabilitySnapshot, error) {
	member, ok := team.ActiveMember(userId)
	if !ok {
		return nil, ErrNotAMember
	}

	role := member.Role
	if team.OwnerId == userId {
		role = model.RoleOwner
	}

	caps := model.RoleBaseline(role)
	for c, granted := range member.Permissions {
		if granted {
			caps[c] = true
		}
	}

	hints := make(map[model.UIHint]bool, len(model.HintProjection))
	for hint, c := range model.HintProjection {
		hints[hint] = caps[c]
	}

	return &model.CapabilitySnapshot{
		UserRole:     role,
		IsOwner:      role == model.RoleOwner,
		IsAdmin:      role == model.RoleAdmin,
		Capabilities: caps,
		UIHints:      hints,
	}, nil
}

// RequireCapability 解析快照并校验某项能力，作为写操作的准入检查
func RequireCapability(team *model.Team, userId string, c model.Capability) (*model.CapabilitySnapshot, error) {
	snapshot, err := ResolveCapabilities(team, userId)
	if err != nil {
		return nil, err
	}
	if !snapshot.Capabilities[c] {
		return nil, ErrInsufficientCapability
	}
	return snapshot, nil
}
