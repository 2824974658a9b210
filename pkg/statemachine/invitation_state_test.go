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

import "testing"

func TestInvitationStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   InvitationStatus
		expected bool
	}{
		{InvitationPending, false},
		{InvitationAccepted, true},
		{InvitationDeclined, true},
		{InvitationExpired, true},
		{InvitationCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInvitationStatus_IsActionable(t *testing.T) {
	tests := []struct {
		status   InvitationStatus
		expected bool
	}{
		{InvitationPending, true},
		{InvitationAccepted, false},
		{InvitationDeclined, false},
		{InvitationExpired, false},
		{InvitationCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsActionable(); got != tt.expected {
				t.Errorf("IsActionable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewInvitationStateMachine(t *testing.T) {
	sm := NewInvitationStateMachine()

	if !sm.Is(InvitationPending) {
		t.Errorf("initial state = %v, want %v", sm.Current(), InvitationPending)
	}

	for _, to := range []InvitationStatus{InvitationAccepted, InvitationDeclined, InvitationExpired, InvitationCancelled} {
		if !sm.CanTransitTo(to) {
			t.Errorf("expected pending -> %v to be allowed", to)
		}
	}

	if err := sm.TransitTo(InvitationAccepted); err != nil {
		t.Fatalf("TransitTo(accepted) error: %v", err)
	}

	// 终止状态不允许再转移
	if err := sm.TransitTo(InvitationDeclined); err == nil {
		t.Error("expected transition from accepted to declined to fail")
	}
}

func TestInvitationStateMachine_Rehydrate(t *testing.T) {
	sm := NewInvitationStateMachine()
	sm.SetCurrent(InvitationExpired)

	if !sm.Is(InvitationExpired) {
		t.Errorf("state = %v, want expired", sm.Current())
	}
	if sm.CanTransitTo(InvitationAccepted) {
		t.Error("expired invitation must not be acceptable")
	}
}

func TestInvitationStateMachine_Hooks(t *testing.T) {
	accepted := false
	sm := NewInvitationStateMachineWithHooks(
		func() error {
			accepted = true
			return nil
		},
		nil,
	)

	if err := sm.TransitTo(InvitationAccepted); err != nil {
		t.Fatalf("TransitTo error: %v", err)
	}
	if !accepted {
		t.Error("onAccept hook was not triggered")
	}

	history := sm.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].From != InvitationPending || history[0].To != InvitationAccepted {
		t.Errorf("unexpected history record: %+v", history[0])
	}
}
