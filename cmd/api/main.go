package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"finpulse/pkg/api"
	"finpulse/pkg/config"
	"finpulse/pkg/core/insight"
	"finpulse/pkg/report"
	"finpulse/pkg/store"
)

func main() {
	// Load environment variables for local development. Missing .env is fine.
	godotenv.Load()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	ctx := context.Background()
	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	repo := store.NewRepository(pool)

	var provider insight.Provider
	switch cfg.Insight.Provider {
	case "gemini":
		provider = &insight.GeminiProvider{Model: cfg.Insight.Model}
	default:
		provider = &insight.StubProvider{}
		log.Info().Msg("insight provider not configured, using deterministic fallbacks")
	}
	insights := insight.NewService(provider, log)

	auth := api.NewAuthHandler(repo, cfg.JWTSecret, cfg.Auth.TokenExpiryHours)
	analysis := api.NewAnalysisHandler(repo, insights)
	advanced := api.NewAdvancedHandler(repo, insights)
	reports := api.NewReportHandler(repo, report.NewGenerator(insights))

	e := api.New(auth, analysis, advanced, reports, log)

	log.Info().Str("port", cfg.Server.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
