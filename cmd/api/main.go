package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storygen/internal/adapter/repo"
	"storygen/internal/auth"
	"storygen/internal/http/handlers"
	"storygen/internal/http/httpapi"
	"storygen/internal/infra"
	"storygen/internal/middleware"
	"storygen/internal/providers/gemini"
	"storygen/internal/storage"
	"storygen/internal/story"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := infra.EnsureSchema(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	users := repo.NewUserRepository(dbpool)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build token issuer")
	}

	store, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare image directory")
	}

	gen, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		StoryModel: cfg.StoryModel,
		ImageModel: cfg.ImageModel,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}

	narrative, err := story.NewNarrativeGenerator(gen)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build narrative generator")
	}
	illustrator, err := story.NewIllustrator(gen, store, cfg.ImagePublicPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build illustrator")
	}
	pipeline, err := story.NewPipeline(narrative, story.MarkerSegmenter{}, illustrator, cfg.IllustrateLimit, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	app := handlers.NewApp(logger, users, tokens, pipeline)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		Auth:            middleware.Auth(tokens, users),
		ImageDir:        store.BasePath(),
		ImagePublicPath: cfg.ImagePublicPath,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
