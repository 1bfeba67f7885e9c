package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/khudyi/premium-steli/internal/auth"
	"github.com/khudyi/premium-steli/internal/config"
	"github.com/khudyi/premium-steli/internal/db"
	"github.com/khudyi/premium-steli/internal/httpx"
	"github.com/khudyi/premium-steli/internal/middleware"
	"github.com/khudyi/premium-steli/internal/projects"
	"github.com/khudyi/premium-steli/internal/submissions"
	"github.com/khudyi/premium-steli/internal/validation"
)

// Server groups the cross-cutting admin endpoints: session management,
// password change, dashboard metrics. Entity CRUD lives with its entity
// package.
type Server struct {
	Cfg         *config.Config
	Cols        *db.Collections
	Val         *validation.Validator
	Log         *slog.Logger
	JWT         *auth.Manager
	Projects    *projects.Service
	Submissions *submissions.Service
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}

func decodeJSON(r *http.Request, v interface{}) error {
	return httpx.DecodeJSON(r.Body, v)
}

func validationDetails(errs validator.ValidationErrors) map[string]string {
	return httpx.ValidationDetails(errs)
}
