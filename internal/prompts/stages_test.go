package prompts_test

import (
	"errors"
	"testing"

	"github.com/reqsmith/casegen/internal/prompts"
)

func TestParseStage(t *testing.T) {
	for _, stage := range prompts.Stages() {
		parsed, err := prompts.ParseStage(string(stage))
		if err != nil {
			t.Errorf("ParseStage(%s) failed: %v", stage, err)
		}
		if parsed != stage {
			t.Errorf("ParseStage(%s) = %s", stage, parsed)
		}
	}
}

func TestParseStageInvalid(t *testing.T) {
	_, err := prompts.ParseStage("embed")
	if !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}
}

func TestInstructionsPerStage(t *testing.T) {
	for _, stage := range prompts.Stages() {
		instructions, err := prompts.Instructions(stage)
		if err != nil {
			t.Errorf("Instructions(%s) failed: %v", stage, err)
		}
		if instructions == "" {
			t.Errorf("Instructions(%s) is empty", stage)
		}
	}
}

func TestSpecPerStage(t *testing.T) {
	for _, stage := range prompts.Stages() {
		spec, err := prompts.Spec(stage)
		if err != nil {
			t.Errorf("Spec(%s) failed: %v", stage, err)
		}
		if spec == "" {
			t.Errorf("Spec(%s) is empty", stage)
		}
	}
}

func TestSpecInvalidStage(t *testing.T) {
	_, err := prompts.Spec(prompts.Stage("embed"))
	if !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}
}
