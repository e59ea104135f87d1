package schema

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"rosync/internal/types"
)

// Version is a device software version such as "7.15.3". Segments compare
// numerically, so 7.9 < 7.10 < 7.10.1.
type Version struct {
	raw    string
	parsed debversion.Version
}

// ParseVersion accepts the version as the device reports it; anything after
// the first space (for example "(stable)") is ignored.
func ParseVersion(raw string) (Version, error) {
	value := strings.TrimSpace(raw)
	if head, _, found := strings.Cut(value, " "); found {
		value = head
	}
	if value == "" {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("device version is empty")
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid device version %q", raw)).
			WithCause(err)
	}
	return Version{raw: value, parsed: parsed}, nil
}

func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	return v.parsed.Compare(other.parsed)
}

// opTokens is the ordered list of comparators tried during parsing. Longer
// tokens precede shorter ones so ">=" is not read as ">".
var opTokens = []types.ConstraintOp{
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpNe,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseConstraint splits a raw ">= 7.1" string into a Constraint. A lone
// "*" matches every version.
func ParseConstraint(raw string) (types.Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Constraint{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version constraint")
	}
	if raw == string(types.ConstraintOpAny) {
		return types.Constraint{Op: types.ConstraintOpAny}, nil
	}
	for _, op := range opTokens {
		if rest, ok := strings.CutPrefix(raw, string(op)); ok {
			version := strings.TrimSpace(rest)
			if version == "" {
				return types.Constraint{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid version constraint: %s", raw))
			}
			return types.Constraint{Op: op, Version: version}, nil
		}
	}
	return types.Constraint{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("version constraint without comparator: %s", raw))
}

// condition is a parsed constraint ready for repeated comparison.
type condition struct {
	op      types.ConstraintOp
	version Version
}

func prepareCondition(constraint types.Constraint) (condition, error) {
	if constraint.Op == types.ConstraintOpAny {
		return condition{op: constraint.Op}, nil
	}
	version, err := ParseVersion(constraint.Version)
	if err != nil {
		return condition{}, err
	}
	return condition{op: constraint.Op, version: version}, nil
}

func parseConditions(raw []string) ([]condition, error) {
	out := make([]condition, 0, len(raw))
	for _, item := range raw {
		constraint, err := ParseConstraint(item)
		if err != nil {
			return nil, err
		}
		prepared, err := prepareCondition(constraint)
		if err != nil {
			return nil, err
		}
		out = append(out, prepared)
	}
	return out, nil
}

func (c condition) holds(version Version) bool {
	if c.op == types.ConstraintOpAny {
		return true
	}
	cmp := version.Compare(c.version)
	switch c.op {
	case types.ConstraintOpEq:
		return cmp == 0
	case types.ConstraintOpNe:
		return cmp != 0
	case types.ConstraintOpGte:
		return cmp >= 0
	case types.ConstraintOpLte:
		return cmp <= 0
	case types.ConstraintOpGt:
		return cmp > 0
	case types.ConstraintOpLt:
		return cmp < 0
	default:
		return false
	}
}

func allHold(conditions []condition, version Version) bool {
	for _, c := range conditions {
		if !c.holds(version) {
			return false
		}
	}
	return true
}
