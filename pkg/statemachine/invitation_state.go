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

package statemachine

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// IsTerminal 判断是否为终止状态
func (is InvitationStatus) IsTerminal() bool {
	return is == InvitationAccepted || is == InvitationDeclined || is == InvitationExpired || is == InvitationCancelled
}

// IsActionable 判断受邀人是否还可以响应该邀请
func (is InvitationStatus) IsActionable() bool {
	return is == InvitationPending
}

// NewInvitationStateMachine 创建邀请状态机
// pending 是唯一的非终止状态，所有转移都从它出发
func NewInvitationStateMachine() *StateMachine[InvitationStatus] {
	sm := NewWithState(InvitationPending)

	// 定义状态转移规则
	sm.Allow(InvitationPending, InvitationAccepted, InvitationDeclined, InvitationExpired, InvitationCancelled)

	return sm
}

// NewInvitationStateMachineWithHooks 创建带钩子的邀请状态机
func NewInvitationStateMachineWithHooks(
	onAccept func() error,
	onClose func(status InvitationStatus) error,
) *StateMachine[InvitationStatus] {
	sm := NewInvitationStateMachine()

	// 接受邀请时的钩子，用于把受邀人写入团队成员
	if onAccept != nil {
		sm.OnEnter(InvitationAccepted, func(state InvitationStatus) error {
			return onAccept()
		})
	}

	// 进入终止状态时的钩子
	if onClose != nil {
		sm.OnEnter(InvitationDeclined, func(state InvitationStatus) error {
			return onClose(state)
		})
		sm.OnEnter(InvitationExpired, func(state InvitationStatus) error {
			return onClose(state)
		})
		sm.OnEnter(InvitationCancelled, func(state InvitationStatus) error {
			return onClose(state)
		})
	}

	return sm
}
