package api

import (
	"github.com/reqsmith/casegen/internal/documents"
	"github.com/reqsmith/casegen/internal/export"
	"github.com/reqsmith/casegen/internal/extraction"
	"github.com/reqsmith/casegen/internal/generation"
	"github.com/reqsmith/casegen/internal/judge"
	"github.com/reqsmith/casegen/internal/oracle"
	"github.com/reqsmith/casegen/internal/pipeline"
	"github.com/reqsmith/casegen/internal/prompts"
	"github.com/reqsmith/casegen/internal/requirements"
	"github.com/reqsmith/casegen/internal/testcases"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents    documents.System
	Prompts      prompts.System
	Requirements requirements.System
	Extraction   extraction.System
	TestCases    testcases.System
	Generation   generation.System
	Judge        judge.System
	Export       export.System
	Pipeline     pipeline.System
}

// NewDomain creates all domain systems from the API runtime. The oracle
// client is shared across every stage that talks to the LLM.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	model := runtime.Model()

	promptsSystem := prompts.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	oracleClient := oracle.New(
		runtime.Agent,
		promptsSystem,
		runtime.Logger,
	)

	docsSystem := documents.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	requirementsSystem := requirements.New(
		db,
		oracleClient,
		model,
		runtime.Oracle.DefaultConfidence,
		runtime.Logger,
		runtime.Pagination,
	)

	extractionSystem := extraction.New(
		db,
		docsSystem,
		oracleClient,
		model,
		runtime.Oracle.DefaultConfidence,
		extraction.RetryConfig{
			InitialInterval: runtime.Oracle.RetryIntervalDuration(),
			MaxElapsedTime:  runtime.Oracle.RetryMaxElapsedDuration(),
		},
		runtime.Logger,
	)

	testCasesSystem := testcases.New(
		db,
		requirementsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	generationSystem := generation.New(
		db,
		oracleClient,
		model,
		runtime.Logger,
	)

	judgeSystem := judge.New(
		db,
		oracleClient,
		runtime.Logger,
	)

	exportSystem := export.New(
		db,
		export.TrackerConfig{
			BaseURL:   runtime.Tracker.BaseURL,
			Username:  runtime.Tracker.Username,
			Token:     runtime.Tracker.Token,
			Project:   runtime.Tracker.Project,
			IssueType: runtime.Tracker.IssueType,
		},
		runtime.Logger,
	)

	pipelineSystem := pipeline.New(
		db,
		docsSystem,
		extractionSystem,
		requirementsSystem,
		runtime.Logger,
	)

	return &Domain{
		Documents:    docsSystem,
		Prompts:      promptsSystem,
		Requirements: requirementsSystem,
		Extraction:   extractionSystem,
		TestCases:    testCasesSystem,
		Generation:   generationSystem,
		Judge:        judgeSystem,
		Export:       exportSystem,
		Pipeline:     pipelineSystem,
	}
}
