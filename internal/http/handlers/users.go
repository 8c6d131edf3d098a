package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"storygen/internal/auth"
	"storygen/internal/domain"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  string `json:"plan"`
	Token string `json:"token"`
}

// Signup registers a new account.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Request body is required")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		a.fail(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		a.fail(w, http.StatusBadRequest, "Password does not match")
		return
	}
	if len(req.Password) < domain.MinPasswordLength {
		a.fail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	email := domain.NormalizeEmail(req.Email)
	if !domain.ValidEmail(email) {
		a.fail(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	_, err = a.Users.Create(r.Context(), &domain.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Plan:         domain.UserPlanFree,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			a.fail(w, http.StatusConflict, "User already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{
		"status":  "Success",
		"message": "User created successfully",
	})
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password answer with the same message so the response does not leak
// which one was wrong.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "Request body is required")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.fail(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), domain.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.fail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		a.Logger.Error().Err(err).Msg("load user failed")
		a.fail(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		a.fail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := a.Tokens.Sign(user.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.fail(w, http.StatusInternalServerError, "An error occurred during login")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"status":  "Success",
		"message": "Login successful",
		"data": map[string]any{
			"user": userDTO{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Plan:  string(user.Plan),
				Token: token,
			},
		},
	})
}
