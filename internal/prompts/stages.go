package prompts

import (
	"encoding/json"
	"slices"
)

// Stage represents an oracle stage that a prompt override targets.
type Stage string

// Valid oracle stages.
const (
	StageExtract  Stage = "extract"
	StageGenerate Stage = "generate"
	StageJudge    Stage = "judge"
)

var stages = []Stage{
	StageExtract,
	StageGenerate,
	StageJudge,
}

// Stages returns the list of valid oracle stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known oracle stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
