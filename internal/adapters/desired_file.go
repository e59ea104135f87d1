package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rosync/internal/ports"
	"rosync/internal/types"
)

type DesiredFileAdapter struct{}

func NewDesiredFileAdapter() DesiredFileAdapter {
	return DesiredFileAdapter{}
}

func (a DesiredFileAdapter) Load(path string) (types.DesiredState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DesiredState{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("desired state file not found").
			WithCause(err)
	}
	return ParseDesiredState(data)
}

// ParseDesiredState decodes a desired-state document and checks its shape.
// Entry contents are validated later against the path's schema.
func ParseDesiredState(data []byte) (types.DesiredState, error) {
	var state types.DesiredState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return types.DesiredState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse desired state yaml").
			WithCause(err)
	}
	if len(state.Tasks) == 0 {
		return types.DesiredState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("desired state contains no tasks")
	}
	for i, task := range state.Tasks {
		if task.Path.IsEmpty() {
			return types.DesiredState{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("task %d has an empty path", i))
		}
		if task.Data == nil {
			return types.DesiredState{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("task %d (%s) has no data list", i, task.Path.String()))
		}
	}
	return state, nil
}

var _ ports.DesiredStatePort = DesiredFileAdapter{}
