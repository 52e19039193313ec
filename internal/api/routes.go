package api

import (
	"net/http"

	"github.com/reqsmith/casegen/internal/config"
	"github.com/reqsmith/casegen/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	maxUpload := cfg.API.MaxUploadSizeBytes()

	routes.Register(
		mux,
		domain.Documents.Handler(maxUpload).Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Requirements.Handler().Routes(),
		domain.Extraction.Handler().Routes(),
		domain.TestCases.Handler().Routes(),
		domain.Generation.Handler().Routes(),
		domain.Judge.Handler().Routes(),
		domain.Export.Handler().Routes(),
		domain.Pipeline.Handler(maxUpload).Routes(),
	)
}
