package esign

import (
	"reflect"
	"testing"
)

func TestSendReadiness(t *testing.T) {
	tests := []struct {
		name              string
		signers           []SignerState
		fields            []FieldState
		order             []string
		sequentialEnabled bool
		want              []string
	}{
		{
			name:    "ready",
			signers: []SignerState{pendingSigner("alice")},
			fields:  []FieldState{{ID: "f1", AssignedTo: "alice", Required: true}},
			want:    nil,
		},
		{
			name:   "no signers",
			fields: []FieldState{{ID: "f1", AssignedTo: "alice"}},
			want:   []string{ReasonNoSigners},
		},
		{
			name:    "no fields",
			signers: []SignerState{pendingSigner("alice")},
			want:    []string{ReasonNoFields},
		},
		{
			name:    "unassigned field",
			signers: []SignerState{pendingSigner("alice")},
			fields:  []FieldState{{ID: "f1", AssignedTo: "alice"}, {ID: "f2"}},
			want:    []string{ReasonUnassignedFields},
		},
		{
			name: "empty document reports every missing precondition",
			want: []string{ReasonNoSigners, ReasonNoFields},
		},
		{
			name:              "sequential order must cover all signers",
			signers:           []SignerState{pendingSigner("alice"), pendingSigner("bob")},
			fields:            []FieldState{{ID: "f1", AssignedTo: "alice"}},
			order:             []string{"alice"},
			sequentialEnabled: true,
			want:              []string{ReasonOrderIncomplete},
		},
		{
			name:              "sequential order with duplicate entry",
			signers:           []SignerState{pendingSigner("alice"), pendingSigner("bob")},
			fields:            []FieldState{{ID: "f1", AssignedTo: "alice"}},
			order:             []string{"alice", "alice"},
			sequentialEnabled: true,
			want:              []string{ReasonOrderIncomplete},
		},
		{
			name:              "sequential order covering all signers",
			signers:           []SignerState{pendingSigner("alice"), pendingSigner("bob")},
			fields:            []FieldState{{ID: "f1", AssignedTo: "alice"}, {ID: "f2", AssignedTo: "bob"}},
			order:             []string{"bob", "alice"},
			sequentialEnabled: true,
			want:              nil,
		},
		{
			name:              "partial order ignored when sequential disabled",
			signers:           []SignerState{pendingSigner("alice"), pendingSigner("bob")},
			fields:            []FieldState{{ID: "f1", AssignedTo: "alice"}},
			order:             []string{"alice"},
			sequentialEnabled: false,
			want:              nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SendReadiness(tt.signers, tt.fields, tt.order, tt.sequentialEnabled)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SendReadiness() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Scenario: document with one unassigned signature field and one signer is
// not ready; assigning the field makes it ready.
func TestSendReadinessAssignmentGate(t *testing.T) {
	signers := []SignerState{pendingSigner("alice")}
	fields := []FieldState{{ID: "f1", Required: true}}

	got := SendReadiness(signers, fields, nil, false)
	if !reflect.DeepEqual(got, []string{ReasonUnassignedFields}) {
		t.Fatalf("SendReadiness() = %v, want [%s]", got, ReasonUnassignedFields)
	}

	fields[0].AssignedTo = "alice"
	if got := SendReadiness(signers, fields, nil, false); got != nil {
		t.Errorf("SendReadiness() after assignment = %v, want nil", got)
	}
}

func TestIncompleteRequired(t *testing.T) {
	fields := []FieldState{
		{ID: "f1", AssignedTo: "alice", Required: true, Completed: true},
		{ID: "f2", AssignedTo: "alice", Required: true},
		{ID: "f3", AssignedTo: "alice", Required: false},
		{ID: "f4", AssignedTo: "bob", Required: true},
		{ID: "f5", AssignedTo: "alice", Required: true},
	}

	got := IncompleteRequired(fields, "alice")
	want := []string{"f2", "f5"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("IncompleteRequired() = %v, want %v", got, want)
	}

	if got := IncompleteRequired(fields, "carol"); got != nil {
		t.Errorf("IncompleteRequired() for unknown signer = %v, want nil", got)
	}
}

func TestAllSignersCompleted(t *testing.T) {
	tests := []struct {
		name    string
		signers []SignerState
		want    bool
	}{
		{"no signers", nil, false},
		{"one pending", []SignerState{completedSigner("a"), pendingSigner("b")}, false},
		{"all completed", []SignerState{completedSigner("a"), completedSigner("b")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllSignersCompleted(tt.signers); got != tt.want {
				t.Errorf("AllSignersCompleted() = %v, want %v", got, tt.want)
			}
		})
	}
}
