package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/khudyi/premium-steli/internal/auth"
	"github.com/khudyi/premium-steli/internal/middleware"
	"github.com/khudyi/premium-steli/internal/models"
	"github.com/khudyi/premium-steli/internal/transport"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// AdminChangePassword updates the password of the authenticated admin.
// The current password must be supplied even though the session is
// already authenticated.
func (s *Server) AdminChangePassword(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	userID := middleware.AdminUserFromContext(r.Context())
	if userID == "" {
		log.Warn("change password: missing user in context")
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("change password: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("change password: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", validationDetails(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.Cols.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		log.Warn("change password: user not found", slog.String("user_id", userID))
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, req.CurrentPassword); err != nil {
		log.Warn("change password: wrong current password", slog.String("user_id", userID))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Warn("change password: weak password")
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"newPassword": "min"})
		return
	}

	update := bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    time.Now().In(s.Cfg.Timezone),
	}}
	if _, err := s.Cols.Users.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		log.Error("change password: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("change password: ok", slog.String("user_id", userID))
	transport.WriteStatus(w, http.StatusOK, "ok")
}
