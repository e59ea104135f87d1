package types

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ValueKind int

const (
	KindText ValueKind = iota
	KindInt
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// Value is a single field value as exchanged with the device. Values keep
// the kind they were written with; compare them with Equal.
type Value struct {
	kind ValueKind
	text string
	num  int64
	flag bool
}

func Text(value string) Value {
	return Value{kind: KindText, text: value}
}

func Int(value int64) Value {
	return Value{kind: KindInt, num: value}
}

func Bool(value bool) Value {
	return Value{kind: KindBool, flag: value}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Canonical returns the value the device API reports back after v is
// written: its wire form read through ParseDeviceWord. Text("no"),
// Text("false") and Bool(false) share one canonical form, as do Text("7")
// and Int(7).
func (v Value) Canonical() Value {
	return ParseDeviceWord(v.String())
}

// Equal reports whether v and other read back the same from the device.
func (v Value) Equal(other Value) bool {
	return v.Canonical() == other.Canonical()
}

// IsEmptyText reports whether v is the empty string.
func (v Value) IsEmptyText() bool {
	return v.kind == KindText && v.text == ""
}

// String renders the value the way the device API expects it on the wire.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		if v.flag {
			return "true"
		}
		return "false"
	default:
		return v.text
	}
}

// Quoted renders the value for messages: text is quoted, other kinds are not.
func (v Value) Quoted() string {
	if v.kind == KindText {
		return strconv.Quote(v.text)
	}
	return v.String()
}

func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	default:
		return v.text
	}
}

// ParseDeviceWord converts a word returned by the device API into a typed
// value: true/yes and false/no become booleans, decimal integers become
// integers, everything else stays text.
func ParseDeviceWord(word string) Value {
	switch word {
	case "true", "yes":
		return Bool(true)
	case "false", "no":
		return Bool(false)
	}
	if isDecimal(word) {
		if n, err := strconv.ParseInt(word, 10, 64); err == nil {
			return Int(n)
		}
	}
	return Text(word)
}

func isDecimal(word string) bool {
	digits := strings.TrimPrefix(word, "-")
	if digits == "" {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValueOf converts a decoded JSON or YAML scalar into a Value.
func ValueOf(raw any) (Value, error) {
	switch typed := raw.(type) {
	case string:
		return Text(typed), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case float64:
		if typed != float64(int64(typed)) {
			return Value{}, fmt.Errorf("non-integral number %v", typed)
		}
		return Int(int64(typed)), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := valueFromNode(node)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func valueFromNode(node *yaml.Node) (Value, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	switch node.ShortTag() {
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return Value{}, err
		}
		return Int(n), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!float":
		return Value{}, fmt.Errorf("line %d: floating point values are not supported", node.Line)
	default:
		return Text(node.Value), nil
	}
}

func isNullNode(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
