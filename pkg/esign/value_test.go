package esign

import (
	"testing"

	"github.com/rithvisal/inksign/internal/constant"
)

func TestValidateFieldValue(t *testing.T) {
	tests := []struct {
		name      string
		fieldType constant.FieldType
		value     string
		wantErr   error
	}{
		{"signature with value", constant.FieldTypeSignature, "data:image/png;base64,iVBOR", nil},
		{"text with value", constant.FieldTypeText, "Alice Smith", nil},
		{"date with value", constant.FieldTypeDate, "2026-08-31", nil},
		{"text empty", constant.FieldTypeText, "", ErrEmptyValue},
		{"signature whitespace only", constant.FieldTypeSignature, "   ", ErrEmptyValue},
		{"checkbox true", constant.FieldTypeCheckbox, "true", nil},
		{"checkbox false", constant.FieldTypeCheckbox, "false", nil},
		{"checkbox empty", constant.FieldTypeCheckbox, "", ErrInvalidCheckbox},
		{"checkbox junk", constant.FieldTypeCheckbox, "yes", ErrInvalidCheckbox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateFieldValue(tt.fieldType, tt.value); err != tt.wantErr {
				t.Errorf("ValidateFieldValue() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
