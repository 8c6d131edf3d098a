package handlers

import (
	"encoding/json"
	"net/http"

	"storygen/internal/middleware"
)

const storyRequestType = "story_idea"

type storyRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// GenerateStory runs the full pipeline for an authenticated premise
// submission. Generation failures are logged with their cause but surface to
// the client as a generic message.
func (a *App) GenerateStory(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())
	if principal == nil {
		a.fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.json(w, http.StatusBadRequest, map[string]string{
			"status":  "Failed",
			"message": "Error, no request found",
		})
		return
	}
	if req.Type != storyRequestType || req.Content == "" {
		a.json(w, http.StatusBadRequest, map[string]string{
			"status":  "failed",
			"message": "Invalid request body",
		})
		return
	}

	result, err := a.Story.Generate(r.Context(), req.Content)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", principal.ID).Msg("story generation failed")
		a.json(w, http.StatusInternalServerError, map[string]string{
			"status":  "failed",
			"message": "Error generating story",
		})
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"message": "success",
		"data":    result,
	})
}
