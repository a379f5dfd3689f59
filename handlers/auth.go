package handlers

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"pokedex/services"
)

const (
	minPasswordLength = 6
	minNameLength     = 2
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (services.Session, error)
	Login(ctx context.Context, email, password string) (services.Session, error)
}

type AuthHandler struct {
	auth AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log.With().Str("handler", "auth").Logger(),
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (req registerRequest) validate() error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return validationError("email must be a valid address")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return validationError("password must be at least %d characters", minPasswordLength)
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Name)) < minNameLength {
		return validationError("name must be at least %d characters", minNameLength)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, h.log, err)
		return
	}

	session, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, h.log, validationError("email and password are required"))
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}
