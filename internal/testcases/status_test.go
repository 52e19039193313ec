package testcases_test

import (
	"testing"

	"github.com/reqsmith/casegen/internal/testcases"
)

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from testcases.Status
		to   testcases.Status
		want bool
	}{
		{"preview to generated", testcases.StatusPreview, testcases.StatusGenerated, true},
		{"preview to stale", testcases.StatusPreview, testcases.StatusStale, true},
		{"preview to rejected", testcases.StatusPreview, testcases.StatusRejected, true},
		{"preview to pushed", testcases.StatusPreview, testcases.StatusPushed, false},
		{"generated to stale", testcases.StatusGenerated, testcases.StatusStale, true},
		{"generated to pushed", testcases.StatusGenerated, testcases.StatusPushed, true},
		{"generated to preview", testcases.StatusGenerated, testcases.StatusPreview, false},
		{"stale to generated", testcases.StatusStale, testcases.StatusGenerated, true},
		{"stale to rejected", testcases.StatusStale, testcases.StatusRejected, true},
		{"stale to pushed", testcases.StatusStale, testcases.StatusPushed, false},
		{"rejected is terminal", testcases.StatusRejected, testcases.StatusGenerated, false},
		{"pushed is terminal", testcases.StatusPushed, testcases.StatusStale, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTestTypeValid(t *testing.T) {
	for _, tt := range []testcases.TestType{
		testcases.TypePositive,
		testcases.TypeNegative,
		testcases.TypeBoundary,
	} {
		if !tt.Valid() {
			t.Errorf("test type %s should be valid", tt)
		}
	}

	if testcases.TestType("fuzz").Valid() {
		t.Error("unknown test type should be invalid")
	}
}
