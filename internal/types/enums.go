package types

// AbsentEntriesPolicy decides what happens to current entries that match
// no desired entry.
type AbsentEntriesPolicy string

const (
	AbsentEntriesIgnore AbsentEntriesPolicy = "ignore"
	AbsentEntriesRemove AbsentEntriesPolicy = "remove"
)

// EntriesContentPolicy decides what happens to fields present on the device
// but missing from the desired entry.
type EntriesContentPolicy string

const (
	EntriesContentIgnore                 EntriesContentPolicy = "ignore"
	EntriesContentRemove                 EntriesContentPolicy = "remove"
	EntriesContentRemoveAsMuchAsPossible EntriesContentPolicy = "remove_as_much_as_possible"
)

type ReadOnlyPolicy string

const (
	ReadOnlyIgnore   ReadOnlyPolicy = "ignore"
	ReadOnlyValidate ReadOnlyPolicy = "validate"
	ReadOnlyError    ReadOnlyPolicy = "error"
)

type WriteOnlyPolicy string

const (
	WriteOnlyCreateOnly   WriteOnlyPolicy = "create_only"
	WriteOnlyAlwaysUpdate WriteOnlyPolicy = "always_update"
	WriteOnlyError        WriteOnlyPolicy = "error"
)

// ConstraintOp is a version comparator used by schema version selection.
type ConstraintOp string

const (
	ConstraintOpAny ConstraintOp = "*"
	ConstraintOpEq  ConstraintOp = "=="
	ConstraintOpNe  ConstraintOp = "!="
	ConstraintOpGte ConstraintOp = ">="
	ConstraintOpLte ConstraintOp = "<="
	ConstraintOpGt  ConstraintOp = ">"
	ConstraintOpLt  ConstraintOp = "<"
)

type OperationKind string

const (
	OperationRemove OperationKind = "remove"
	OperationUpdate OperationKind = "update"
	OperationCreate OperationKind = "create"
	OperationMove   OperationKind = "move"
)
