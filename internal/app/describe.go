package app

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/types"
)

func (s Service) Paths() PathsResult {
	paths := s.Registry.Paths()
	out := PathsResult{Paths: make([]PathSummary, 0, len(paths))}
	for _, path := range paths {
		selector, _ := s.Registry.Lookup(path)
		out.Paths = append(out.Paths, PathSummary{
			Path:            path.String(),
			NeedsVersion:    selector.NeedsVersion(),
			FullyUnderstood: selector.FullyUnderstood(),
		})
	}
	return out
}

// Describe resolves the schema of one path for a software version.
func (s Service) Describe(req DescribeRequest) (DescribeResult, error) {
	path := types.ParsePath(req.Path)
	if path.IsEmpty() {
		return DescribeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path is required")
	}
	selector, ok := s.Registry.Lookup(path)
	if !ok {
		return DescribeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown path %q", path.String()))
	}
	version := strings.TrimSpace(req.Version)
	if selector.NeedsVersion() && version == "" {
		return DescribeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("path %q depends on the device version, pass a version to describe it", path.String()))
	}
	resolution, err := selector.Resolve(version)
	if err != nil {
		return DescribeResult{}, err
	}
	result := DescribeResult{
		Path:      path.String(),
		Version:   version,
		Supported: resolution.Supported,
		Message:   resolution.Message,
	}
	if !resolution.Supported {
		return result, nil
	}
	resource := resolution.Resource
	result.Mode = string(resource.Mode)
	result.Keys = resource.Keys
	result.FixedEntries = resource.FixedEntries
	for _, name := range resource.FieldNames() {
		field := resource.Fields[name]
		result.Fields = append(result.Fields, FieldSummary{
			Name:        name,
			Required:    field.Required,
			Default:     optionalValue(field.Default),
			CanDisable:  field.CanDisable,
			RemoveValue: optionalValue(field.RemoveValue),
			ReadOnly:    field.ReadOnly,
			WriteOnly:   field.WriteOnly,
		})
	}
	return result, nil
}

func optionalValue(value *types.Value) string {
	if value == nil {
		return ""
	}
	return value.Quoted()
}
