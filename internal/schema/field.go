// Package schema describes the configuration paths the engine understands:
// per-field behavior, structural mode and how both vary with the device
// software version.
package schema

import (
	"fmt"
	"strings"

	"rosync/internal/types"
)

// Field describes how one field of a resource behaves.
type Field struct {
	Required bool
	Default  *types.Value
	// CanDisable marks fields that may be unset on the device.
	CanDisable bool
	// RemoveValue is written instead of unsetting the field.
	RemoveValue *types.Value
	// AbsentValue stands in for the field when the device omits it.
	AbsentValue  *types.Value
	ReadOnly     bool
	WriteOnly    bool
	ComputedFrom []string
}

func Str(value string) *types.Value {
	v := types.Text(value)
	return &v
}

func Num(value int64) *types.Value {
	v := types.Int(value)
	return &v
}

func Flag(value bool) *types.Value {
	v := types.Bool(value)
	return &v
}

// Validate reports an authoring error for contradictory field settings.
func (f Field) Validate() error {
	var kinds []string
	if f.Required {
		kinds = append(kinds, "required")
	}
	if f.Default != nil || f.CanDisable {
		kinds = append(kinds, "default/can_disable")
	}
	if len(f.ComputedFrom) > 0 {
		kinds = append(kinds, "computed_from")
	}
	if len(kinds) > 1 {
		return fmt.Errorf("%s are mutually exclusive", strings.Join(kinds, ", "))
	}
	if f.RemoveValue != nil && !f.CanDisable {
		return fmt.Errorf("remove_value can only be set when can_disable is set")
	}
	if f.AbsentValue != nil && (f.Default != nil || f.CanDisable || len(f.ComputedFrom) > 0) {
		return fmt.Errorf("absent_value cannot be combined with default, can_disable or computed_from")
	}
	if f.ReadOnly {
		if f.Required || f.Default != nil || f.CanDisable || f.RemoveValue != nil || f.AbsentValue != nil {
			return fmt.Errorf("read_only cannot be combined with required, default, can_disable, remove_value or absent_value")
		}
		if f.WriteOnly {
			return fmt.Errorf("read_only and write_only are mutually exclusive")
		}
	}
	return nil
}

// IsNeutral reports whether value is what the device shows when the field
// is left alone: its default, its remove value or its absent value.
func (f Field) IsNeutral(value types.Value) bool {
	if f.Default != nil && f.Default.Equal(value) {
		return true
	}
	if f.RemoveValue != nil && f.RemoveValue.Equal(value) {
		return true
	}
	return f.AbsentValue != nil && f.AbsentValue.Equal(value)
}
