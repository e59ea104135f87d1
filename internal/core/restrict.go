package core

import (
	"fmt"
	"regexp"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/schema"
	"rosync/internal/types"
)

type restrictRule struct {
	types.RestrictRule
	regex *regexp.Regexp
}

// restrictFilter limits a run to the entries matching every rule.
type restrictFilter struct {
	rules []restrictRule
}

func compileRestrict(rules []types.RestrictRule, resource schema.Resource) (restrictFilter, error) {
	out := restrictFilter{}
	for i, rule := range rules {
		if _, ok := resource.Fields[rule.Field]; !ok {
			return restrictFilter{}, invalidEntry("restrict[%d]: unknown field %q.", i, rule.Field)
		}
		compiled := restrictRule{RestrictRule: rule}
		if rule.Regex != "" {
			regex, err := regexp.Compile(rule.Regex)
			if err != nil {
				return restrictFilter{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("restrict[%d]: invalid regex %q", i, rule.Regex)).
					WithCause(err)
			}
			compiled.regex = regex
		}
		out.rules = append(out.rules, compiled)
	}
	return out, nil
}

func (f restrictFilter) active() bool {
	return len(f.rules) > 0
}

func (f restrictFilter) matchesCurrent(fields types.Fields) bool {
	for _, rule := range f.rules {
		value, ok := fields.Get(rule.Field)
		if !rule.matches(value, ok) {
			return false
		}
	}
	return true
}

func (f restrictFilter) matchesDesired(desired types.Desired) bool {
	for _, rule := range f.rules {
		var value types.Value
		ok := false
		if state, has := desired.Get(rule.Field); has {
			value, ok = state.Value()
		}
		if !rule.matches(value, ok) {
			return false
		}
	}
	return true
}

func (r restrictRule) matches(value types.Value, present bool) bool {
	matched := false
	if !present {
		matched = r.MatchDisabled
	} else {
		for _, candidate := range r.Values {
			if candidate.Equal(value) || candidate.String() == value.String() {
				matched = true
				break
			}
		}
		if !matched && r.regex != nil {
			matched = r.regex.MatchString(value.String())
		}
	}
	if r.Invert {
		return !matched
	}
	return matched
}
