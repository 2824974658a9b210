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

import "testing"

func TestParseCapability(t *testing.T) {
	for _, c := range AllCapabilities {
		if _, err := ParseCapability(string(c)); err != nil {
			t.Errorf("ParseCapability(%q) error: %v", c, err)
		}
	}

	if _, err := ParseCapability("can_fly"); err == nil {
		t.Error("expected unknown permission key to be rejected")
	}
}

func TestParsePermissions_RejectsUnknownKey(t *testing.T) {
	_, err := ParsePermissions(map[string]bool{
		"can_invite_members": true,
		"can_everything":     true,
	})
	if err == nil {
		t.Error("expected error for unknown key in permission set")
	}
}

func TestRoleBaseline(t *testing.T) {
	owner := RoleBaseline(RoleOwner)
	admin := RoleBaseline(RoleAdmin)
	member := RoleBaseline(RoleMember)

	// 每个角色的基线必须覆盖全部能力
	for _, caps := range []map[Capability]bool{owner, admin, member} {
		if len(caps) != len(AllCapabilities) {
			t.Fatalf("baseline size = %d, want %d", len(caps), len(AllCapabilities))
		}
	}

	for _, c := range AllCapabilities {
		if !owner[c] {
			t.Errorf("owner should have %s", c)
		}
	}

	if admin[CanDeleteTeam] {
		t.Error("admin must not have can_delete_team")
	}
	for _, c := range AllCapabilities {
		if c != CanDeleteTeam && !admin[c] {
			t.Errorf("admin should have %s", c)
		}
	}

	viewOnly := map[Capability]bool{
		CanViewTeamDetails:      true,
		CanViewMembersList:      true,
		CanViewTeamAnalytics:    true,
		CanViewBrandAssignments: true,
	}
	for _, c := range AllCapabilities {
		if member[c] != viewOnly[c] {
			t.Errorf("member baseline for %s = %v, want %v", c, member[c], viewOnly[c])
		}
	}
}

func TestHintProjection_Total(t *testing.T) {
	// 每个提示都恰好映射到一个已知能力
	for hint, cap := range HintProjection {
		if _, err := ParseCapability(string(cap)); err != nil {
			t.Errorf("hint %s maps to unknown capability %s", hint, cap)
		}
	}
	if len(HintProjection) != 9 {
		t.Errorf("hint projection size = %d, want 9", len(HintProjection))
	}
}
