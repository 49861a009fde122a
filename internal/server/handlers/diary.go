package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/server/auth"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/gophdiary/internal/server/respond"
	"github.com/go-chi/chi/v5"
)

type DiaryService interface {
	ListByAuthor(ctx context.Context, p auth.Principal, authorID int64) ([]models.Diary, error)
	Search(ctx context.Context, p auth.Principal, q diaries.Query) ([]models.Diary, error)
	Create(ctx context.Context, p auth.Principal, authorID int64, in models.DiaryInput) (*models.Diary, error)
	Update(ctx context.Context, p auth.Principal, id int64, patch models.DiaryPatch) (*models.Diary, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
}

// DiaryHandler serves /api/diaries. It must run behind
// middleware.BearerAuth. Errors are reported as {"message": ...}.
type DiaryHandler struct {
	diaries DiaryService
	logger  logging.Logger
}

func NewDiaryHandler(diaries DiaryService, logger logging.Logger) *DiaryHandler {
	return &DiaryHandler{diaries: diaries, logger: logger}
}

func (h *DiaryHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	authorID, ok := parseID(w, chi.URLParam(r, "authorID"), "author id")
	if !ok {
		return
	}

	list, err := h.diaries.ListByAuthor(r.Context(), p, authorID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *DiaryHandler) Search(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	params := r.URL.Query()
	authorID, ok := parseID(w, params.Get("authorId"), "authorId")
	if !ok {
		return
	}

	weather, err := models.ParseWeather(params.Get("weather"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	mood, err := models.ParseMood(params.Get("mood"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.diaries.Search(r.Context(), p, diaries.Query{
		AuthorID: authorID,
		Keyword:  params.Get("keyword"),
		Weather:  weather,
		Mood:     mood,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	authorID, ok := parseID(w, r.URL.Query().Get("authorId"), "authorId")
	if !ok {
		return
	}

	var in models.DiaryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.diaries.Create(r.Context(), p, authorID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, d)
}

func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"), "diary id")
	if !ok {
		return
	}

	var patch models.DiaryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.diaries.Update(r.Context(), p, id, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, d)
}

func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"), "diary id")
	if !ok {
		return
	}

	if err := h.diaries.Delete(r.Context(), p, id); err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

func (h *DiaryHandler) principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
	}
	return p, ok
}

func (h *DiaryHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respond.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		respond.Message(w, http.StatusForbidden, "you do not have access to this diary")
	case errors.Is(err, common.ErrorNotFound):
		respond.Message(w, http.StatusNotFound, "diary not found")
	default:
		h.logger.Error(r.Context(), "diary request failed", "error", err)
		respond.Message(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseID(w http.ResponseWriter, raw, name string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		respond.Message(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
