package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nmalhotra/bookshelf-service/internal/integrations/openlibrary"
	"github.com/nmalhotra/bookshelf-service/internal/middleware"
	"github.com/nmalhotra/bookshelf-service/internal/service"
)

type Handler struct {
	svc     *service.Service
	catalog *openlibrary.Client
	log     *logrus.Logger
}

func NewHandler(svc *service.Service, catalog *openlibrary.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, catalog: catalog, log: log}
}

// Welcome handles the auth index route
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Welcome to the Auth API")
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd service.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.Register(cmd)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
	})
}

// GetUserDetails returns the authenticated caller's profile
func (h *Handler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusForbidden, "Access denied. User not authenticated.")
		return
	}

	user, err := h.svc.GetUserDetails(authUser.ID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User details retrieved successfully",
		"data":    user,
	})
}

// respondServiceError maps service failure kinds to HTTP statuses.
// Anything untagged is an internal failure: logged, but only a generic
// message reaches the client.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong, Please try again")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
