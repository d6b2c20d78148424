package esign

import (
	"reflect"
	"testing"

	"github.com/rithvisal/inksign/internal/constant"
)

func pendingSigner(id string) SignerState {
	return SignerState{ID: id, Status: constant.SignerStatusPending}
}

func completedSigner(id string) SignerState {
	return SignerState{ID: id, Status: constant.SignerStatusCompleted}
}

func TestEligibleSignersParallel(t *testing.T) {
	signers := []SignerState{pendingSigner("a"), completedSigner("b"), pendingSigner("c")}

	got := EligibleSigners(signers, nil, false)
	want := []string{"a", "c"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("EligibleSigners() = %v, want %v", got, want)
	}
}

func TestEligibleSignersSequential(t *testing.T) {
	tests := []struct {
		name    string
		signers []SignerState
		order   []string
		want    []string
	}{
		{
			name:    "first in order pending",
			signers: []SignerState{pendingSigner("a"), pendingSigner("b"), pendingSigner("c")},
			order:   []string{"a", "b", "c"},
			want:    []string{"a"},
		},
		{
			name:    "first completed unlocks second",
			signers: []SignerState{completedSigner("a"), pendingSigner("b"), pendingSigner("c")},
			order:   []string{"a", "b", "c"},
			want:    []string{"b"},
		},
		{
			name:    "all completed",
			signers: []SignerState{completedSigner("a"), completedSigner("b")},
			order:   []string{"a", "b"},
			want:    nil,
		},
		{
			name:    "signer absent from order is never eligible",
			signers: []SignerState{completedSigner("a"), pendingSigner("b")},
			order:   []string{"a"},
			want:    nil,
		},
		{
			name:    "stale order entry is skipped",
			signers: []SignerState{pendingSigner("b")},
			order:   []string{"deleted", "b"},
			want:    []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleSigners(tt.signers, tt.order, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EligibleSigners() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Sequential mode with order [a, b, c]: c stays ineligible while a or b is
// pending and becomes eligible once both completed.
func TestIsEligibleSequentialProgression(t *testing.T) {
	order := []string{"a", "b", "c"}

	signers := []SignerState{pendingSigner("a"), pendingSigner("b"), pendingSigner("c")}
	if IsEligible(signers, order, true, "c") {
		t.Error("c should not be eligible while a and b are pending")
	}

	signers = []SignerState{completedSigner("a"), pendingSigner("b"), pendingSigner("c")}
	if IsEligible(signers, order, true, "c") {
		t.Error("c should not be eligible while b is pending")
	}
	if !IsEligible(signers, order, true, "b") {
		t.Error("b should be eligible after a completed")
	}

	signers = []SignerState{completedSigner("a"), completedSigner("b"), pendingSigner("c")}
	if !IsEligible(signers, order, true, "c") {
		t.Error("c should be eligible after a and b completed")
	}
}

func TestCanEditStructure(t *testing.T) {
	tests := []struct {
		name   string
		status constant.DocumentStatus
		want   bool
	}{
		{"draft", constant.DocumentStatusDraft, true},
		{"pending", constant.DocumentStatusPending, false},
		{"completed", constant.DocumentStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditStructure(tt.status); got != tt.want {
				t.Errorf("CanEditStructure(%s) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCanReorder(t *testing.T) {
	tests := []struct {
		name    string
		status  constant.DocumentStatus
		signers []SignerState
		want    bool
	}{
		{"draft", constant.DocumentStatusDraft, []SignerState{pendingSigner("a")}, true},
		{"pending without completion", constant.DocumentStatusPending, []SignerState{pendingSigner("a"), pendingSigner("b")}, true},
		{"pending after first completion", constant.DocumentStatusPending, []SignerState{completedSigner("a"), pendingSigner("b")}, false},
		{"completed", constant.DocumentStatusCompleted, []SignerState{completedSigner("a")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReorder(tt.status, tt.signers); got != tt.want {
				t.Errorf("CanReorder() = %v, want %v", got, tt.want)
			}
		})
	}
}
