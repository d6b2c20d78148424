package esign

import (
	"errors"
	"strings"

	"github.com/rithvisal/inksign/internal/constant"
)

var (
	ErrEmptyValue      = errors.New("value must not be empty")
	ErrInvalidCheckbox = errors.New("checkbox value must be \"true\" or \"false\"")
)

// ValidateFieldValue checks the captured content for a field before it is
// marked completed. Non-checkbox fields must carry a non-blank value, so
// that completed == true always implies a present value. Checkbox fields
// accept exactly "true" or "false"; both count as present.
func ValidateFieldValue(fieldType constant.FieldType, value string) error {
	if fieldType == constant.FieldTypeCheckbox {
		if value != "true" && value != "false" {
			return ErrInvalidCheckbox
		}
		return nil
	}

	if strings.TrimSpace(value) == "" {
		return ErrEmptyValue
	}

	return nil
}
