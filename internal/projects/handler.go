package projects

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/khudyi/premium-steli/internal/cache"
	"github.com/khudyi/premium-steli/internal/httpx"
	"github.com/khudyi/premium-steli/internal/middleware"
	"github.com/khudyi/premium-steli/internal/transport"
	"github.com/khudyi/premium-steli/internal/validation"
)

const publicCacheKey = "projects:public"

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	pageSize int
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration, pageSize int) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
		pageSize: pageSize,
	}
}

// PublicList serves the public gallery: full set, newest first, with an
// optional category filter. Unfiltered responses are cached and the
// cache is dropped on every mutation.
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	filter := PublicListFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}

	useCache := h.cache != nil && filter.Category == ""
	if useCache {
		if cached, ok, err := h.cache.Get(r.Context(), publicCacheKey); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.ListPublic(ctx, filter)
	if err != nil {
		log.Error("projects public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("projects public list: ok", slog.Int("count", len(items)))
	payload := map[string]interface{}{"items": items}
	if useCache {
		if raw, err := encodeJSON(payload); err == nil {
			_ = h.cache.Set(r.Context(), publicCacheKey, raw, h.cacheTTL)
		}
	}
	transport.WriteJSON(w, http.StatusOK, payload)
}

// AdminBrowse runs the gallery pipeline: search, date sort toggle,
// fixed-size pages.
func (h *Handler) AdminBrowse(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	page, err := httpx.ParsePage(r.URL.Query())
	if err != nil {
		log.Warn("admin projects browse: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	query := ListQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   strings.TrimSpace(r.URL.Query().Get("sort")),
		Page:   page,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	result, err := h.service.Browse(ctx, query, h.pageSize)
	if err != nil {
		log.Error("admin projects browse: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin projects browse: ok",
		slog.Int("count", len(result.Items)),
		slog.Int("page", result.Page),
	)
	transport.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	h.adminSave(w, r, "")
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin projects update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}
	h.adminSave(w, r, id)
}

func (h *Handler) adminSave(w http.ResponseWriter, r *http.Request, id string) {
	log := h.logWithRequest(r)

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin projects save: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin projects save: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	draft := Draft{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Save(ctx, draft)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			log.Warn("admin projects save: validation error")
			transport.WriteError(w, http.StatusBadRequest, "validation error", ve.Fields)
		case errors.Is(err, ErrNotFound):
			log.Warn("admin projects save: not found", slog.String("project_id", id))
			transport.WriteError(w, http.StatusNotFound, "project not found", nil)
		default:
			log.Error("admin projects save: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		}
		return
	}

	h.invalidatePublicCache(r.Context())

	if id == "" {
		log.Info("admin projects create: ok", slog.String("project_id", item.ID))
		transport.WriteJSON(w, http.StatusCreated, item)
		return
	}
	log.Info("admin projects update: ok", slog.String("project_id", item.ID))
	transport.WriteJSON(w, http.StatusOK, item)
}

// AdminDelete removes a project after the frontend's confirmation step
// and returns the armed undo candidate so the client can offer restore.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin projects delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	candidate, err := h.service.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin projects delete: not found", slog.String("project_id", id))
			transport.WriteError(w, http.StatusNotFound, "project not found", nil)
			return
		}
		log.Error("admin projects delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidatePublicCache(r.Context())

	log.Info("admin projects delete: ok", slog.String("project_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
		"undo":   candidate,
	})
}

// AdminRestore re-inserts the pending undo candidate as a new project.
func (h *Handler) AdminRestore(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Restore(ctx)
	if err != nil {
		if errors.Is(err, ErrNothingToUndo) {
			log.Warn("admin projects restore: nothing to restore")
			transport.WriteError(w, http.StatusConflict, "nothing to restore", nil)
			return
		}
		log.Error("admin projects restore: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidatePublicCache(r.Context())

	log.Info("admin projects restore: ok", slog.String("project_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

// AdminUndoState reports whether an undo candidate is pending.
func (h *Handler) AdminUndoState(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.service.PendingUndo()
	if !ok {
		transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"pending": false})
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pending": true,
		"undo":    candidate,
	})
}

// AdminDismissUndo drops the pending candidate; the delete becomes
// final.
func (h *Handler) AdminDismissUndo(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	h.service.DismissUndo()
	log.Info("admin projects undo dismissed")
	transport.WriteStatus(w, http.StatusOK, "dismissed")
}

func (h *Handler) invalidatePublicCache(ctx context.Context) {
	if h.cache != nil {
		_ = h.cache.Delete(ctx, publicCacheKey)
	}
}

func encodeJSON(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
