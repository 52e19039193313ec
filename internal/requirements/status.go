package requirements

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a requirement revision.
type Status string

const (
	// StatusExtracted is the initial state of a successfully extracted requirement.
	StatusExtracted Status = "extracted"
	// StatusNeedsManualFix marks a paragraph whose extraction failed schema validation.
	StatusNeedsManualFix Status = "needs_manual_fix"
	// StatusInReview marks a requirement claimed by a reviewer.
	StatusInReview Status = "in_review"
	// StatusNeedsSecondReview marks a review that landed below the approval threshold.
	StatusNeedsSecondReview Status = "needs_second_review"
	// StatusApproved marks a requirement eligible for test-case generation.
	StatusApproved Status = "approved"
	// StatusArchived marks a superseded revision. Terminal.
	StatusArchived Status = "archived"
)

// Statuses returns all valid requirement statuses.
func Statuses() []Status {
	return []Status{
		StatusExtracted,
		StatusNeedsManualFix,
		StatusInReview,
		StatusNeedsSecondReview,
		StatusApproved,
		StatusArchived,
	}
}

// transitions is the closed set of permitted status changes. Archived is
// terminal. A below-threshold re-review keeps needs_second_review, so the
// state allows a self-transition.
var transitions = map[Status]map[Status]bool{
	StatusExtracted: {
		StatusInReview:          true,
		StatusApproved:          true,
		StatusNeedsSecondReview: true,
		StatusArchived:          true,
	},
	StatusNeedsManualFix: {
		StatusInReview:          true,
		StatusApproved:          true,
		StatusNeedsSecondReview: true,
		StatusArchived:          true,
	},
	StatusInReview: {
		StatusApproved:          true,
		StatusNeedsSecondReview: true,
		StatusArchived:          true,
	},
	StatusNeedsSecondReview: {
		StatusInReview:          true,
		StatusApproved:          true,
		StatusNeedsSecondReview: true,
		StatusArchived:          true,
	},
	StatusApproved: {
		StatusArchived: true,
	},
	StatusArchived: {},
}

// Valid reports whether s is a recognized status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the status change from s to target is permitted.
func (s Status) CanTransition(target Status) bool {
	return transitions[s][target]
}

// Active reports whether the requirement revision is current, meaning not archived.
func (s Status) Active() bool {
	return s.Valid() && s != StatusArchived
}

// UnmarshalJSON validates that the value is a recognized status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	status := Status(raw)
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	*s = status
	return nil
}
