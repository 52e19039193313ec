package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/reqsmith/casegen/internal/prompts"
	"github.com/reqsmith/casegen/pkg/formatting"
)

// GenerationInput carries the approved requirement handed to the generate stage.
// Fields is the structured extraction blob as stored on the requirement.
type GenerationInput struct {
	RequirementIdent string          `json:"requirement_ident"`
	Fields           json.RawMessage `json:"fields"`
	TestType         string          `json:"test_type"`
}

// JudgeInput pairs a test case with its source requirement for evaluation.
type JudgeInput struct {
	Requirement json.RawMessage `json:"requirement"`
	TestCase    json.RawMessage `json:"test_case"`
}

// Client is the LLM boundary for the extract, generate, and judge stages.
// Implementations return *ValidationError for schema failures so callers can
// distinguish them from transient transport errors.
type Client interface {
	Extract(ctx context.Context, paragraph string) (*Extraction, error)
	Generate(ctx context.Context, input GenerationInput) (*GeneratedContent, error)
	Judge(ctx context.Context, input JudgeInput) (*Verdict, error)
}

// Test type framings appended to the generate prompt. Keys double as the
// set of supported test types.
var testTypeFramings = map[string]string{
	"positive": "Generate a positive test case: the trigger condition is met and every mandated action must occur.",
	"negative": "Generate a negative test case: the trigger condition is not met and no mandated action may occur.",
	"boundary": "Generate a boundary test case: exercise the exact threshold values of the trigger condition.",
}

type client struct {
	agent   gaconfig.AgentConfig
	prompts prompts.System
	logger  *slog.Logger
}

// New creates an oracle client backed by the configured agent provider.
func New(
	cfg gaconfig.AgentConfig,
	ps prompts.System,
	logger *slog.Logger,
) Client {
	return &client{
		agent:   cfg,
		prompts: ps,
		logger:  logger.With("system", "oracle"),
	}
}

func (c *client) Extract(ctx context.Context, paragraph string) (*Extraction, error) {
	payload := "Requirement paragraph:\n\n" + paragraph

	result, trace, err := invoke[Extraction](ctx, c, prompts.StageExtract, payload)
	if err != nil {
		return nil, err
	}
	result.Trace = trace

	if err := result.Validate(); err != nil {
		attachTrace(err, trace)
		return nil, err
	}

	c.logger.Debug("extraction complete",
		"type", result.Type,
		"fields", len(result.FieldConfidences),
	)
	return result, nil
}

func (c *client) Generate(ctx context.Context, input GenerationInput) (*GeneratedContent, error) {
	framing, ok := testTypeFramings[input.TestType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTestType, input.TestType)
	}

	body, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize generation input: %w", err)
	}

	payload := framing + "\n\nStructured requirement:\n\n" + string(body)

	result, trace, err := invoke[GeneratedContent](ctx, c, prompts.StageGenerate, payload)
	if err != nil {
		return nil, err
	}
	result.Trace = trace

	if err := result.Validate(); err != nil {
		attachTrace(err, trace)
		return nil, err
	}

	c.logger.Debug("generation complete",
		"requirement", input.RequirementIdent,
		"test_type", input.TestType,
	)
	return result, nil
}

func (c *client) Judge(ctx context.Context, input JudgeInput) (*Verdict, error) {
	body, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize judge input: %w", err)
	}

	payload := "Requirement and test case under review:\n\n" + string(body)

	result, trace, err := invoke[Verdict](ctx, c, prompts.StageJudge, payload)
	if err != nil {
		return nil, err
	}
	result.Trace = trace

	if err := result.Validate(); err != nil {
		attachTrace(err, trace)
		return nil, err
	}

	c.logger.Debug("judge complete", "total_rating", result.TotalRating)
	return result, nil
}

// invoke composes the stage prompt, runs a single chat completion, and
// decodes the response. The returned Trace carries the composed prompt and
// raw response body; decode failures surface as *ValidationError with the
// trace attached.
func invoke[T any](ctx context.Context, c *client, stage prompts.Stage, payload string) (*T, Trace, error) {
	prompt, err := ComposePrompt(ctx, c.prompts, stage, payload)
	if err != nil {
		return nil, Trace{}, err
	}

	a, err := agent.New(&c.agent)
	if err != nil {
		return nil, Trace{}, fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, Trace{Prompt: prompt}, fmt.Errorf("%s chat call: %w", stage, err)
	}

	trace := Trace{Prompt: prompt, Raw: resp.Content()}

	result, err := formatting.Parse[T](trace.Raw)
	if err != nil {
		return nil, trace, &ValidationError{Stage: stage, Reason: err.Error(), Trace: trace}
	}

	return &result, trace, nil
}

// ComposePrompt assembles the full prompt for a stage: effective
// instructions, output specification, and the call payload.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	payload string,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\n")
	sb.WriteString(payload)

	return sb.String(), nil
}

// TestTypes returns the supported generation test types in stable order.
func TestTypes() []string {
	return []string{"positive", "negative", "boundary"}
}
