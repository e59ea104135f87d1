package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosync/internal/ports"
	"rosync/internal/schema"
	"rosync/internal/types"
)

// MsgVersionUnsupported prefixes the error returned when a path does not
// exist on the device's software version.
const MsgVersionUnsupported = "path not available for this version"

// MsgNoStrategy prefixes capability errors.
const MsgNoStrategy = "no applicable strategy"

type SyncRequest struct {
	Path     types.Path
	Data     []types.RawEntry
	Policies types.Policies
	Restrict []types.RestrictRule
	DryRun   bool
}

type Diff struct {
	Before []types.Entry
	After  []types.Entry
}

type SyncResult struct {
	Changed bool
	OldData []types.Entry
	NewData []types.Entry
	Plan    types.Plan
	Diff    Diff
}

// Prepared is a validated request bound to the resource that applies to
// the device version.
type Prepared struct {
	Path     types.Path
	Version  string
	Resource schema.Resource
	Policies types.Policies
	Desired  []types.Desired
	DryRun   bool

	restrict restrictFilter
}

type Engine struct {
	Registry *schema.Registry
	Device   ports.DevicePort
}

func NewEngine(registry *schema.Registry, device ports.DevicePort) Engine {
	return Engine{Registry: registry, Device: device}
}

// IsVersionUnsupported reports whether err says the path does not exist on
// the device's version.
func IsVersionUnsupported(err error) bool {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return false
	}
	return errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition && strings.HasPrefix(builder.Msg, MsgVersionUnsupported)
}

// Prepare resolves the resource for version, checks that the engine can
// handle it and validates every desired entry. It never talks to a
// device.
func Prepare(ctx context.Context, registry *schema.Registry, version string, req SyncRequest) (Prepared, error) {
	assert.NotEmpty(ctx, req.Path.String(), "path must be set")
	selector, ok := registry.Lookup(req.Path)
	if !ok {
		return Prepared{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown path %q", req.Path.String()))
	}
	resolution, err := selector.Resolve(version)
	if err != nil {
		return Prepared{}, err
	}
	if !resolution.Supported {
		msg := fmt.Sprintf("%s: %q on %s", MsgVersionUnsupported, req.Path.String(), version)
		if resolution.Message != "" {
			msg += " (" + resolution.Message + ")"
		}
		return Prepared{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(msg)
	}
	resource := resolution.Resource
	if err := checkCapability(req.Path, resource); err != nil {
		return Prepared{}, err
	}

	policies := req.Policies.WithDefaults()
	if err := validatePolicies(policies); err != nil {
		return Prepared{}, err
	}
	if policies.EnsureOrder && resource.Mode != schema.ModeSingleValue && policies.AbsentEntries != types.AbsentEntriesRemove {
		return Prepared{}, invalidEntry("ensure_order=true requires handle_absent_entries=remove.")
	}
	restrict, err := compileRestrict(req.Restrict, resource)
	if err != nil {
		return Prepared{}, err
	}
	if resource.Mode == schema.ModeSingleValue && len(req.Data) != 1 {
		return Prepared{}, invalidEntry("Data must be a list with exactly one element for single-value path %q, got %d.", req.Path.String(), len(req.Data))
	}

	desired := make([]types.Desired, 0, len(req.Data))
	for i, raw := range req.Data {
		forText := fmt.Sprintf(" at index %d", i)
		if resource.Mode == schema.ModeSingleValue {
			forText = ""
		}
		entry, err := NormalizeEntry(raw, resource, policies, forText)
		if err != nil {
			return Prepared{}, err
		}
		if restrict.active() && !restrict.matchesDesired(entry) {
			return Prepared{}, invalidEntry("The element at index #%d does not match the restrict criteria.", i)
		}
		desired = append(desired, entry)
	}
	switch resource.Mode {
	case schema.ModeKeyed:
		if err := checkPrimaryKeys(resource.Keys, desired); err != nil {
			return Prepared{}, err
		}
	case schema.ModeStratified:
		if err := checkStratifyKeys(resource.Keys, desired); err != nil {
			return Prepared{}, err
		}
	}

	log.Ctx(ctx).Debug().
		Str("path", req.Path.String()).
		Str("mode", string(resource.Mode)).
		Int("entries", len(desired)).
		Msg("prepared sync request")
	return Prepared{
		Path:     req.Path,
		Version:  version,
		Resource: resource,
		Policies: policies,
		Desired:  desired,
		DryRun:   req.DryRun,
		restrict: restrict,
	}, nil
}

func checkCapability(path types.Path, resource schema.Resource) error {
	switch resource.Mode {
	case schema.ModeIdentifierOnly, schema.ModeUnknown:
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s for path %q (%s)", MsgNoStrategy, path.String(), resource.Mode))
	}
	if !resource.FullyUnderstood {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s for path %q: path is not fully understood", MsgNoStrategy, path.String()))
	}
	return nil
}

func validatePolicies(policies types.Policies) error {
	switch policies.AbsentEntries {
	case types.AbsentEntriesIgnore, types.AbsentEntriesRemove:
	default:
		return invalidEntry("invalid handle_absent_entries %q", policies.AbsentEntries)
	}
	switch policies.EntriesContent {
	case types.EntriesContentIgnore, types.EntriesContentRemove, types.EntriesContentRemoveAsMuchAsPossible:
	default:
		return invalidEntry("invalid handle_entries_content %q", policies.EntriesContent)
	}
	switch policies.ReadOnly {
	case types.ReadOnlyIgnore, types.ReadOnlyValidate, types.ReadOnlyError:
	default:
		return invalidEntry("invalid handle_read_only %q", policies.ReadOnly)
	}
	switch policies.WriteOnly {
	case types.WriteOnlyCreateOnly, types.WriteOnlyAlwaysUpdate, types.WriteOnlyError:
	default:
		return invalidEntry("invalid handle_write_only %q", policies.WriteOnly)
	}
	return nil
}

// Reconcile brings the device's entries at req.Path to the desired state.
// Every check runs before the first mutation; a failing device operation
// aborts the rest of the plan.
func (e Engine) Reconcile(ctx context.Context, req SyncRequest) (SyncResult, error) {
	selector, ok := e.Registry.Lookup(req.Path)
	if !ok {
		return SyncResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown path %q", req.Path.String()))
	}
	version := ""
	if selector.NeedsVersion() {
		reported, err := e.Device.Version(ctx)
		if err != nil {
			return SyncResult{}, err
		}
		version = reported
	}
	prepared, err := Prepare(ctx, e.Registry, version, req)
	if err != nil {
		return SyncResult{}, err
	}

	current, err := e.fetch(ctx, prepared)
	if err != nil {
		return SyncResult{}, err
	}
	plan, after, err := prepared.plan(current)
	if err != nil {
		return SyncResult{}, err
	}
	summary := plan.Summary()
	log.Ctx(ctx).Debug().
		Str("path", req.Path.String()).
		Int("removals", summary.Removals).
		Int("updates", summary.Updates).
		Int("creations", summary.Creations).
		Int("moves", summary.Moves).
		Bool("dry_run", req.DryRun).
		Msg("computed sync plan")

	changed := !plan.IsEmpty()
	oldData := snapshot(prepared.Resource, current)
	newData := snapshotRefs(prepared.Resource, after)
	if changed && !req.DryRun {
		if err := e.apply(ctx, req.Path, plan); err != nil {
			return SyncResult{}, err
		}
		refreshed, err := e.fetch(ctx, prepared)
		if err != nil {
			return SyncResult{}, err
		}
		newData = snapshot(prepared.Resource, refreshed)
	}
	return SyncResult{
		Changed: changed,
		OldData: oldData,
		NewData: newData,
		Plan:    plan,
		Diff:    Diff{Before: oldData, After: newData},
	}, nil
}

func (p Prepared) plan(current []types.Entry) (types.Plan, []*types.Entry, error) {
	switch p.Resource.Mode {
	case schema.ModeSingleValue:
		return planSingleValue(p, current)
	case schema.ModeKeyed:
		return planKeyed(p, current)
	case schema.ModeStratified:
		return planStratified(p, current)
	default:
		return types.Plan{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s for path %q (%s)", MsgNoStrategy, p.Path.String(), p.Resource.Mode))
	}
}

// fetch lists the current entries, dropping dynamic and builtin entries
// and the ones outside the restrict filter, and filling absent values.
func (e Engine) fetch(ctx context.Context, p Prepared) ([]types.Entry, error) {
	listed, err := e.Device.List(ctx, p.Path)
	if err != nil {
		return nil, err
	}
	out := make([]types.Entry, 0, len(listed))
	for _, entry := range listed {
		if entry.Dynamic || entry.Builtin {
			continue
		}
		entry = entry.Clone()
		for _, name := range p.Resource.FieldNames() {
			field := p.Resource.Fields[name]
			if field.AbsentValue != nil && !entry.Fields.Has(name) {
				entry.Fields.Set(name, *field.AbsentValue)
			}
		}
		if p.restrict.active() && !p.restrict.matchesCurrent(entry.Fields) {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// snapshot keeps only the fields the resource describes.
func snapshot(resource schema.Resource, entries []types.Entry) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, relevant(resource, entry))
	}
	return out
}

func snapshotRefs(resource schema.Resource, entries []*types.Entry) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, relevant(resource, *entry))
	}
	return out
}

func relevant(resource schema.Resource, entry types.Entry) types.Entry {
	out := types.Entry{ID: entry.ID}
	for _, name := range entry.Fields.Keys() {
		if _, ok := resource.Fields[name]; !ok {
			continue
		}
		value, _ := entry.Fields.Get(name)
		out.Fields.Set(name, value)
	}
	return out
}
