// Package bootstrap assembles the application from configuration.
package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/extract"
	"resume-analysis/internal/llm"
	"resume-analysis/internal/llm/gemini"
	"resume-analysis/internal/resumes"
	"resume-analysis/internal/services/health"
	"resume-analysis/internal/shared/config"
	"resume-analysis/internal/shared/server"
	"resume-analysis/internal/shared/telemetry"
)

const serviceName = "resume-analysis"

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Repo          resumes.Repo
	Extractor     *extract.Extractor
	Analyzer      *analyses.Analyzer
	ResumeService *resumes.Service
	ResumeHandler *resumes.Handler
}

// Option overrides a dependency before the router is wired, mainly for tests.
type Option func(*App)

// WithLLMClient replaces the language model client.
func WithLLMClient(client llm.Client) Option {
	return func(app *App) {
		app.Analyzer = analyses.NewAnalyzer(client, app.Config.LLMTimeout)
	}
}

// Build prepares all dependencies and wires the router.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	repo, err := resumes.NewJSONRepo(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor(extract.Config{
		TesseractPath: cfg.TesseractPath,
		TesseractLang: cfg.TesseractLang,
	})

	app := &App{
		Config:    cfg,
		Repo:      repo,
		Extractor: extractor,
		Analyzer:  analyses.NewAnalyzer(buildLLMClient(cfg), cfg.LLMTimeout),
	}

	for _, opt := range opts {
		opt(app)
	}

	app.ResumeService = resumes.NewService(app.Extractor, app.Analyzer, app.Repo, nil)
	app.ResumeHandler = resumes.NewHandler(app.ResumeService, cfg.MaxUploadMB<<20)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		HealthService: health.NewService(serviceName),
		ResumeHandler: app.ResumeHandler,
	})

	return app, nil
}

// buildLLMClient returns nil when no credential is configured; the analyzer
// then reports every analysis as unavailable instead of failing startup.
func buildLLMClient(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		telemetry.Warn("bootstrap.no_api_key", map[string]any{
			"detail": "GEMINI_API_KEY empty; analysis will use fallback results",
		})
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		telemetry.Error("bootstrap.gemini_init_failed", map[string]any{"error": err.Error()})
		return nil
	}
	return client
}
