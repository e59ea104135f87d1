package schema

import (
	"fmt"

	"rosync/internal/types"
)

// Outcome is what a version range selects: a resource, or a message
// explaining why the path is not available.
type Outcome struct {
	resource *Resource
	message  string
}

func Supported(resource Resource) Outcome {
	return Outcome{resource: &resource}
}

func Unsupported(message string) Outcome {
	return Outcome{message: message}
}

func (o Outcome) IsSupported() bool {
	return o.resource != nil
}

// Range selects Outcome for versions matching Op against Version.
type Range struct {
	Op      types.ConstraintOp
	Version string
	Outcome Outcome

	cond condition
}

// Selector picks the resource that applies to a device version.
type Selector struct {
	base   *Resource
	ranges []Range
}

// Unversioned wraps a single resource. The resource may still carry
// version-gated fields.
func Unversioned(resource Resource) Selector {
	return Selector{base: &resource}
}

// Versioned selects by the first matching range, in declaration order.
func Versioned(ranges ...Range) Selector {
	return Selector{ranges: ranges}
}

// Resolution is the outcome of resolving a selector for one version.
type Resolution struct {
	Resource  Resource
	Supported bool
	Message   string
}

// NeedsVersion reports whether Resolve depends on the version argument.
func (s Selector) NeedsVersion() bool {
	return s.base == nil || s.base.HasVersionedFields()
}

// FullyUnderstood reports whether any resource this selector can produce is
// fully understood.
func (s Selector) FullyUnderstood() bool {
	if s.base != nil {
		return s.base.FullyUnderstood
	}
	for _, r := range s.ranges {
		if r.Outcome.IsSupported() && r.Outcome.resource.FullyUnderstood {
			return true
		}
	}
	return false
}

// Resolve returns the resource for version. The version is only parsed when
// NeedsVersion is true.
func (s Selector) Resolve(version string) (Resolution, error) {
	if s.base != nil && !s.base.HasVersionedFields() {
		return Resolution{Resource: *s.base, Supported: true}, nil
	}
	parsed, err := ParseVersion(version)
	if err != nil {
		return Resolution{}, err
	}
	if s.base != nil {
		resource, err := s.base.specialize(parsed)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Resource: resource, Supported: true}, nil
	}
	for _, r := range s.ranges {
		cond := r.cond
		if cond.op == "" {
			cond, err = prepareCondition(types.Constraint{Op: r.Op, Version: r.Version})
			if err != nil {
				return Resolution{}, err
			}
		}
		if !cond.holds(parsed) {
			continue
		}
		if !r.Outcome.IsSupported() {
			return Resolution{Supported: false, Message: r.Outcome.message}, nil
		}
		resource := *r.Outcome.resource
		if resource.HasVersionedFields() {
			resource, err = resource.specialize(parsed)
			if err != nil {
				return Resolution{}, err
			}
		}
		return Resolution{Resource: resource, Supported: true}, nil
	}
	return Resolution{Supported: false}, nil
}

func (s *Selector) validate() error {
	if s.base != nil {
		if len(s.ranges) > 0 {
			return fmt.Errorf("selector has both a base resource and version ranges")
		}
		return s.base.validate()
	}
	if len(s.ranges) == 0 {
		return fmt.Errorf("selector has neither a base resource nor version ranges")
	}
	for i := range s.ranges {
		r := &s.ranges[i]
		if r.Op != types.ConstraintOpAny && r.Version == "" {
			return fmt.Errorf("range %d: comparator %q needs a version", i, r.Op)
		}
		cond, err := prepareCondition(types.Constraint{Op: r.Op, Version: r.Version})
		if err != nil {
			return fmt.Errorf("range %d: %w", i, err)
		}
		switch r.Op {
		case types.ConstraintOpAny, types.ConstraintOpEq, types.ConstraintOpNe,
			types.ConstraintOpGte, types.ConstraintOpLte, types.ConstraintOpGt, types.ConstraintOpLt:
		default:
			return fmt.Errorf("range %d: unknown comparator %q", i, r.Op)
		}
		r.cond = cond
		if r.Outcome.IsSupported() {
			if err := r.Outcome.resource.validate(); err != nil {
				return fmt.Errorf("range %d: %w", i, err)
			}
		}
	}
	return nil
}
