package types

// Task is one reconciliation request as written in a desired-state file.
type Task struct {
	Path     Path           `yaml:"path"`
	Policies Policies       `yaml:",inline"`
	Restrict []RestrictRule `yaml:"restrict,omitempty"`
	Data     []RawEntry     `yaml:"data"`
}

type DesiredState struct {
	Tasks []Task `yaml:"tasks"`
}
