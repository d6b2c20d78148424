package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rithvisal/inksign/internal/apperror"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatalf("RegisterCustomValidations() error = %v", err)
	}

	return v
}

func TestStrNotEmpty(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Name string `validate:"strNotEmpty"`
	}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"non empty", "Lease Agreement", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(payload{Name: tt.value})
			if (err != nil) != tt.wantErr {
				t.Errorf("validate strNotEmpty(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestCustomMinMax(t *testing.T) {
	v := newTestValidator(t)

	type payload struct {
		Name string `validate:"cmin=3,cmax=10"`
	}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"within bounds", "Alice", false},
		{"trimmed below min", " ab ", true},
		{"above max", "a very long name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(payload{Name: tt.value})
			if (err != nil) != tt.wantErr {
				t.Errorf("validate cmin/cmax(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateErrorMessagesFromAppError(t *testing.T) {
	err := apperror.NotReady("cannot send document", "no_signers", "unassigned_fields")

	out := GenerateErrorMessages(err, "document")
	if len(out) != 1 {
		t.Fatalf("GenerateErrorMessages() returned %d errors, want 1", len(out))
	}

	if out[0].Field != "document" {
		t.Errorf("Field = %q, want %q", out[0].Field, "document")
	}
	if out[0].Kind != string(apperror.KindNotReady) {
		t.Errorf("Kind = %q, want %q", out[0].Kind, apperror.KindNotReady)
	}
	if len(out[0].Reasons) != 2 {
		t.Errorf("Reasons = %v, want 2 reason codes", out[0].Reasons)
	}
}
