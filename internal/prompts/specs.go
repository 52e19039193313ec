package prompts

const extractSpec = `Respond with a JSON object matching this exact structure:

{
  "requirement_id": "<identifier or null>",
  "type": "<safety|privacy|performance|functional|unknown>",
  "subject": "<short subject string>",
  "trigger": {"metric": "<metric>", "operator": "<operator>", "value": <value>},
  "actions": ["<action1>", "<action2>"],
  "timing_ms": <number or null>,
  "numbers_units": ["<number>", "<unit>"],
  "field_confidences": {"<field>": <0..1>}
}

Field constraints:
- requirement_id: The identifier stated in the text (e.g. "REQ-AL-045"),
  or null when the text carries none.
- trigger: null when the requirement has no trigger condition.
- actions: Empty array when no actions are mandated.
- field_confidences: One entry per populated field, each in [0, 1].

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Process exactly one requirement paragraph per response
- Report only what the text states; use null for absent fields`

const generateSpec = `Respond with a JSON object matching this exact structure:

{
  "gherkin": "<Given/When/Then scenario>",
  "evidence": ["<evidence item>"],
  "automated_steps": ["<step>"],
  "sample_data": {"<key>": <value>},
  "code_scaffold": "<scaffold source text>"
}

Field constraints:
- gherkin: A complete scenario exercising the requested test type.
- evidence: Short descriptions of artifacts a tester must capture.
- automated_steps: Ordered, executable step strings.
- sample_data: Concrete values satisfying the scenario preconditions.
- code_scaffold: A skeleton implementation of the automated steps.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- All five keys are mandatory; never omit one
- Derive every value from the provided structured requirement`

const judgeSpec = `Respond with a JSON object matching this exact structure:

{
  "feedback": "<one-line summary>",
  "evaluation": "<short rationale>",
  "total_rating": <1..4>,
  "correctness_of_trigger": <0..1>,
  "timing_and_latency": <0..1>,
  "actions_and_priority": <0..1>,
  "logging_and_traceability": <0..1>,
  "standards_citations": <0..1>,
  "boundary_readiness": <0..1>,
  "consistency_and_no_hallucination": <0..1>,
  "confidence_and_warnings": <0..1>
}

Field constraints:
- total_rating: Integer. 1 = unusable, 2 = major rework, 3 = minor
  rework, 4 = ready for sign-off.
- Sub-scores are optional; omit any dimension the test case does not
  touch rather than guessing.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Judge only against the provided requirement; cite nothing external
- feedback must stand alone as a one-line verdict for a review queue`

var specs = map[Stage]string{
	StageExtract:  extractSpec,
	StageGenerate: generateSpec,
	StageJudge:    judgeSpec,
}

// Spec returns the hardcoded specification for an oracle stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
