package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/khudyi/premium-steli/internal/transport"
)

type DashboardResponse struct {
	TotalProjects     int64 `json:"total_projects"`
	TotalSubmissions  int64 `json:"total_submissions"`
	RecentSubmissions int64 `json:"recent_submissions"`
}

// AdminDashboard returns the counters shown on the admin landing tab.
// Recent submissions cover the last seven days.
func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	totalProjects, err := s.Projects.Count(ctx)
	if err != nil {
		log.Error("dashboard: project count failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	totalSubmissions, err := s.Submissions.Count(ctx)
	if err != nil {
		log.Error("dashboard: submission count failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	recentSubmissions, err := s.Submissions.CountRecent(ctx)
	if err != nil {
		log.Error("dashboard: recent submission count failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, DashboardResponse{
		TotalProjects:     totalProjects,
		TotalSubmissions:  totalSubmissions,
		RecentSubmissions: recentSubmissions,
	})
}
