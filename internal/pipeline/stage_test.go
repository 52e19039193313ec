package pipeline

import "testing"

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name string
		reqs map[string]int
		tcs  map[string]int
		want Stage
	}{
		{
			name: "no artifacts",
			want: StageUpload,
		},
		{
			name: "extracted requirements only",
			reqs: map[string]int{"extracted": 3, "needs_manual_fix": 1},
			want: StageExtract,
		},
		{
			name: "reviewed requirements",
			reqs: map[string]int{"extracted": 2, "approved": 1},
			want: StageReview,
		},
		{
			name: "test cases outrank review",
			reqs: map[string]int{"approved": 3},
			tcs:  map[string]int{"preview": 2, "generated": 1},
			want: StageGenerate,
		},
		{
			name: "any pushed test case wins",
			reqs: map[string]int{"approved": 3},
			tcs:  map[string]int{"generated": 2, "pushed": 1},
			want: StagePush,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveStage(tt.reqs, tt.tcs); got != tt.want {
				t.Errorf("resolveStage() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStageProgressOrdering(t *testing.T) {
	prev := 0
	for _, stage := range []Stage{StageUpload, StageExtract, StageReview, StageGenerate, StagePush} {
		ord := stageOrder[stage]
		if ord <= prev {
			t.Errorf("stage %s ordinal %d not increasing", stage, ord)
		}
		prev = ord
	}
}
