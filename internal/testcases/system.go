package testcases

import (
	"context"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/pagination"
)

// System defines the public contract for test case domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[TestCase], error)

	Find(ctx context.Context, id uuid.UUID) (*TestCase, error)

	// Decide applies one human QA decision: approve, reject, or regenerate.
	Decide(ctx context.Context, cmd DecideCommand) (*TestCase, error)

	// BatchDecide applies one decision to many test cases, collecting
	// per-item errors instead of aborting.
	BatchDecide(ctx context.Context, cmd BatchDecideCommand) (*BatchResult, error)

	// Pending returns the review queue: preview and stale test cases with
	// their requirement context, oldest first.
	Pending(ctx context.Context, docID *uuid.UUID, limit int) ([]PendingItem, error)

	// Audit returns the chronological review history of the test case's
	// owning requirement.
	Audit(ctx context.Context, id uuid.UUID) (*RequirementAudit, error)

	// Package assembles the full review context for one test case.
	Package(ctx context.Context, id uuid.UUID) (*ReviewPackage, error)
}
