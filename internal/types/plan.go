package types

type RemoveOp struct {
	ID    string
	Entry Entry
}

type UpdateOp struct {
	// ID is empty for single-value paths.
	ID      string
	Changes Changes
	Entry   *Entry
}

type CreateOp struct {
	Entry *Entry
}

// MoveOp places Entry directly before Before.
type MoveOp struct {
	Entry  *Entry
	Before *Entry
}

// Plan lists the operations of one run in execution order: removals,
// updates, creations, moves. Creations and moves share entry pointers so an
// identifier assigned on creation is visible to a later move.
type Plan struct {
	Removals  []RemoveOp
	Updates   []UpdateOp
	Creations []CreateOp
	Moves     []MoveOp
}

func (p Plan) IsEmpty() bool {
	return len(p.Removals) == 0 && len(p.Updates) == 0 && len(p.Creations) == 0 && len(p.Moves) == 0
}

type PlanSummary struct {
	Removals  int `yaml:"removals"`
	Updates   int `yaml:"updates"`
	Creations int `yaml:"creations"`
	Moves     int `yaml:"moves"`
}

func (p Plan) Summary() PlanSummary {
	return PlanSummary{
		Removals:  len(p.Removals),
		Updates:   len(p.Updates),
		Creations: len(p.Creations),
		Moves:     len(p.Moves),
	}
}

func (s PlanSummary) Count(kind OperationKind) int {
	switch kind {
	case OperationRemove:
		return s.Removals
	case OperationUpdate:
		return s.Updates
	case OperationCreate:
		return s.Creations
	case OperationMove:
		return s.Moves
	default:
		return 0
	}
}
