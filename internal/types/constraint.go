package types

// Constraint is one "op version" condition, e.g. ">= 7.1".
type Constraint struct {
	Op      ConstraintOp
	Version string
}

func (c Constraint) String() string {
	if c.Op == ConstraintOpAny {
		return "*"
	}
	return string(c.Op) + " " + c.Version
}
