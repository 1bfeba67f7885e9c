package submissions

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("submission not found")

type Notifier interface {
	SendSubmissionNotification(ctx context.Context, item Submission) (string, error)
}

type Service struct {
	repo     Repository
	location *time.Location
	notifier Notifier
}

func NewService(repo Repository, location *time.Location, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		location: location,
		notifier: notifier,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Submission, error) {
	item := Submission{
		ID:             primitive.NewObjectID().Hex(),
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		ProjectDetails: strings.TrimSpace(req.ProjectDetails),
		Timestamp:      time.Now().In(s.location),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Submission{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]Submission, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CountRecent counts submissions from the last seven days, the window
// the dashboard card reports.
func (s *Service) CountRecent(ctx context.Context) (int64, error) {
	since := time.Now().In(s.location).AddDate(0, 0, -7)
	return s.repo.CountSince(ctx, since)
}

// NotifyNew emails the site owner about a fresh lead. Failures are the
// caller's to log; the submission itself is already stored.
func (s *Service) NotifyNew(ctx context.Context, item Submission) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendSubmissionNotification(ctx, item)
	return err
}
