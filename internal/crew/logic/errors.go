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

import "errors"

// 领域错误，路由层统一映射到响应码表
var (
	ErrNotAMember             = errors.New("user is not a member of this team")
	ErrInsufficientCapability = errors.New("insufficient capability for this operation")
	ErrTeamNotFound           = errors.New("team not found")
	ErrInvitationNotFound     = errors.New("invitation not found")
	ErrInvitationExpired      = errors.New("invitation has expired")
	ErrInvitationClosed       = errors.New("invitation is no longer pending")
	ErrEmailMismatch          = errors.New("invitation is addressed to a different email")
	ErrAlreadyMember          = errors.New("user is already an active team member")
	ErrDuplicateAssignment    = errors.New("brand already has an active assignment to this team")
	ErrOwnerCannotBeRemoved   = errors.New("team owner cannot be removed")
	ErrBrandNotFound          = errors.New("brand not found")
	ErrBrandAccessDenied      = errors.New("user has no access to this brand")
	ErrAssetNotFound          = errors.New("asset not found")
)
