package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Server is running",
	})
}

// NotFound answers every unmatched route.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	a.fail(w, http.StatusNotFound, "Routes not found!!!")
}
