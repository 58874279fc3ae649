package main

import (
	"context"
	"flag"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/config"
	"github.com/justsurfingit/nexskill/internal/database"
	"github.com/justsurfingit/nexskill/internal/handlers"
	"github.com/justsurfingit/nexskill/internal/logger"
	"github.com/justsurfingit/nexskill/internal/ratelimit"
	"github.com/justsurfingit/nexskill/internal/services"
	"github.com/justsurfingit/nexskill/internal/storage"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	// 1. Load configuration (.env, YAML, environment)
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init("console")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogFormat)
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Database connection
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// 3. Resume storage and session tokens
	resumes, err := storage.NewResumeStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare upload directory")
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.SessionSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token issuer")
	}

	// 4. Core services
	extraction, err := services.NewExtractionService(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		log.Error().Err(err).Msg("Job extraction disabled")
	}

	// 5. Router
	r := handlers.NewRouter(handlers.Deps{
		Accounts:     services.NewAccountService(db, tokens),
		Jobs:         services.NewJobService(db),
		Applications: services.NewApplicationService(db, resumes),
		Extraction:   extraction,
		Analysis:     services.NewResumeAnalysisService(resumes),
		Resumes:      resumes,
		Tokens:       tokens,
		LoginLimiter: ratelimit.New(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst),
		CORSOrigins:  cfg.CORSOrigins,
		RequireToken: cfg.Auth.RequireToken,
	})

	log.Info().
		Str("port", cfg.Port).
		Str("driver", cfg.Database.Driver).
		Str("uploads", resumes.Root()).
		Bool("extraction", extraction != nil).
		Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}
