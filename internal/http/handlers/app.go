package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"storygen/internal/auth"
	"storygen/internal/domain"
	"storygen/internal/infra"
)

// StoryGenerator is the pipeline contract the story handler depends on.
type StoryGenerator interface {
	Generate(ctx context.Context, premise string) (domain.StoryResult, error)
}

// App bundles the dependencies handlers need.
type App struct {
	Logger infra.Logger
	Users  domain.UserRepository
	Tokens *auth.TokenIssuer
	Story  StoryGenerator
}

// NewApp constructs the handler container.
func NewApp(logger infra.Logger, users domain.UserRepository, tokens *auth.TokenIssuer, story StoryGenerator) *App {
	return &App{Logger: logger, Users: users, Tokens: tokens, Story: story}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) fail(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"status": "Fail", "message": message})
}
