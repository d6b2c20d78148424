package esign

import (
	"reflect"
	"testing"
)

func TestAssignedFieldIDs(t *testing.T) {
	tests := []struct {
		name     string
		fields   []FieldState
		signerID string
		want     []string
	}{
		{
			name: "only the signer's fields, in order",
			fields: []FieldState{
				{ID: "f1", AssignedTo: "a"},
				{ID: "f2", AssignedTo: "b"},
				{ID: "f3", AssignedTo: "a"},
			},
			signerID: "a",
			want:     []string{"f1", "f3"},
		},
		{
			name: "no fields assigned",
			fields: []FieldState{
				{ID: "f1", AssignedTo: "b"},
				{ID: "f2"},
			},
			signerID: "a",
			want:     nil,
		},
		{
			name:     "no fields at all",
			fields:   nil,
			signerID: "a",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignedFieldIDs(tt.fields, tt.signerID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AssignedFieldIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A field submitted by one signer and then reassigned after the document went
// back to draft must be reset, otherwise the new assignee can never submit it
// and the document would finish carrying the previous signer's value.
func TestFieldsToReset(t *testing.T) {
	tests := []struct {
		name   string
		fields []FieldState
		want   []string
	}{
		{
			name: "completed fields are reset, pending ones kept",
			fields: []FieldState{
				{ID: "f1", AssignedTo: "a", Completed: true},
				{ID: "f2", AssignedTo: "b"},
				{ID: "f3", AssignedTo: "a", Completed: true},
			},
			want: []string{"f1", "f3"},
		},
		{
			name: "nothing submitted yet",
			fields: []FieldState{
				{ID: "f1", AssignedTo: "a"},
				{ID: "f2", AssignedTo: "b"},
			},
			want: nil,
		},
		{
			name: "unassigned completed field is still reset",
			fields: []FieldState{
				{ID: "f1", Completed: true},
			},
			want: []string{"f1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FieldsToReset(tt.fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FieldsToReset() = %v, want %v", got, tt.want)
			}
		})
	}
}
