package requirements_test

import (
	"testing"

	"github.com/reqsmith/casegen/internal/requirements"
)

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   requirements.Status
		to     requirements.Status
		want   bool
	}{
		{"extracted to in_review", requirements.StatusExtracted, requirements.StatusInReview, true},
		{"extracted to approved", requirements.StatusExtracted, requirements.StatusApproved, true},
		{"extracted to archived", requirements.StatusExtracted, requirements.StatusArchived, true},
		{"extracted to needs_manual_fix", requirements.StatusExtracted, requirements.StatusNeedsManualFix, false},
		{"needs_manual_fix to in_review", requirements.StatusNeedsManualFix, requirements.StatusInReview, true},
		{"in_review to approved", requirements.StatusInReview, requirements.StatusApproved, true},
		{"in_review to extracted", requirements.StatusInReview, requirements.StatusExtracted, false},
		{"needs_second_review self transition", requirements.StatusNeedsSecondReview, requirements.StatusNeedsSecondReview, true},
		{"needs_second_review back to in_review", requirements.StatusNeedsSecondReview, requirements.StatusInReview, true},
		{"approved to archived", requirements.StatusApproved, requirements.StatusArchived, true},
		{"approved to in_review", requirements.StatusApproved, requirements.StatusInReview, false},
		{"archived is terminal", requirements.StatusArchived, requirements.StatusInReview, false},
		{"archived cannot re-archive", requirements.StatusArchived, requirements.StatusArchived, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range requirements.Statuses() {
		if !s.Valid() {
			t.Errorf("status %s should be valid", s)
		}
	}

	if requirements.Status("deleted").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestStatusActive(t *testing.T) {
	if requirements.StatusArchived.Active() {
		t.Error("archived should not be active")
	}
	if !requirements.StatusApproved.Active() {
		t.Error("approved should be active")
	}
	if requirements.Status("bogus").Active() {
		t.Error("invalid status should not be active")
	}
}
