package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/blogcart-be/internal/auth"
	"github.com/hongminglow/blogcart-be/internal/http/respond"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/models/dto"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

// UsersHandler owns registration, login, and the user listing.
type UsersHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(store storage.UserStore, tokens *auth.TokenManager, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{store: store, tokens: tokens, logger: logger}
}

// Register attaches user routes. The credential endpoints go through the
// provided rate limiter.
func (h *UsersHandler) Register(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.With(limit).Post("/register", h.handleRegister)
		r.With(limit).Post("/login", h.handleLogin)
		r.Get("/", h.handleList)
	})
}

func (h *UsersHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		respond.Message(w, http.StatusBadRequest, "All fields are required")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password failed", zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Message(w, http.StatusBadRequest, "Email already exists")
			return
		}
		h.logger.Error("create user failed", zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	token, err := h.tokens.Generate(created.ID)
	if err != nil {
		h.logger.Error("generate token failed", zap.String("user_id", created.ID), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.AuthResponse{User: created, Token: token})
}

func (h *UsersHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Message(w, http.StatusBadRequest, "Email and password required")
		return
	}

	// Unknown email and wrong password answer identically so the response
	// does not reveal which one was wrong.
	user, err := h.store.FindUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.logger.Error("fetch user failed", zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error logging in")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.logger.Error("generate token failed", zap.String("user_id", user.ID), zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{User: user, Token: token})
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		respond.Message(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}
