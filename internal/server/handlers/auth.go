// Package handlers exposes the stand-in diary API over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/server/respond"
)

const registeredMessage = "registration successful"

type UserService interface {
	Register(ctx context.Context, p models.Profile) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
}

type AuthHandler struct {
	users  UserService
	logger logging.Logger
}

func NewAuthHandler(users UserService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.users.Login(r.Context(), creds)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			respond.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Register(r.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorAlreadyExists):
			respond.Error(w, http.StatusConflict, "email already registered")
		default:
			h.logger.Error(r.Context(), "registration failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, models.RegisterResult{Message: registeredMessage, User: *u})
}
