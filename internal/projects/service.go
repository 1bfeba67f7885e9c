package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrNothingToUndo = errors.New("no undo candidate")
)

// ValidationError carries the per-field problems of a rejected draft.
// No data-access call is made when a draft fails validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid project draft"
}

// Service is the gallery's list engine. Every mutation ends in the
// caller re-reading the full set ("mutate then reload"): the admin list
// is small, and wholesale replacement is easier to reason about than
// incremental cache patching. Concurrent admin sessions are
// last-write-wins at the store; no version checking.
type Service struct {
	repo     Repository
	undo     *UndoTracker
	location *time.Location
}

func NewService(repo Repository, undo *UndoTracker, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		undo:     undo,
		location: location,
	}
}

// Browse loads the full project set and runs it through the
// filter -> sort -> paginate pipeline. A page that no longer exists
// after the filter narrowed the set resets to page 1.
func (s *Service) Browse(ctx context.Context, query ListQuery, pageSize int) (Page, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Page{}, err
	}

	filtered := FilterByTitle(items, strings.TrimSpace(query.Search))
	sorted := SortByDate(filtered, query.Sort)

	page := query.Page
	if page < 1 {
		page = 1
	}
	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = 1
	}

	return Paginate(sorted, page, pageSize), nil
}

func (s *Service) ListPublic(ctx context.Context, filter PublicListFilter) ([]Project, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.ListPublic(ctx, filter)
}

// Save persists a draft: insert when it has no id, update otherwise.
// The field gate runs first; a draft that fails it never reaches the
// store and the caller gets the per-field details to surface inline.
func (s *Service) Save(ctx context.Context, draft Draft) (Project, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.Date = strings.TrimSpace(draft.Date)
	draft.ImageURL = strings.TrimSpace(draft.ImageURL)
	if draft.Category == "" {
		draft.Category = CategoryMSDClassic
	}

	if problems := draft.Validate(); problems != nil {
		return Project{}, &ValidationError{Fields: problems}
	}

	now := time.Now().In(s.location)

	if draft.ID == "" {
		item := Project{
			ID:          primitive.NewObjectID().Hex(),
			Title:       draft.Title,
			Description: draft.Description,
			Category:    draft.Category,
			Date:        draft.Date,
			ImageURL:    draft.ImageURL,
			Images:      normalizeImages(draft.Images),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Insert(ctx, item); err != nil {
			return Project{}, err
		}
		return item, nil
	}

	set := bson.M{
		"title":       draft.Title,
		"description": draft.Description,
		"category":    draft.Category,
		"date":        draft.Date,
		"image_url":   draft.ImageURL,
		"images":      normalizeImages(draft.Images),
		"updated_at":  now,
	}
	updated, err := s.repo.Update(ctx, draft.ID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return updated, nil
}

// Delete removes the project and arms the undo tracker with its
// pre-delete copy. On any failure nothing is armed and the list is left
// as it was.
func (s *Service) Delete(ctx context.Context, id string) (Project, error) {
	id = strings.TrimSpace(id)

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if !deleted {
		return Project{}, ErrNotFound
	}

	s.undo.Arm(item)
	item.ID = ""
	return item, nil
}

// Restore re-inserts the current undo candidate as a brand-new project
// with a fresh id. If the insert fails the candidate is put back so the
// user may retry, unless a newer delete superseded it meanwhile.
func (s *Service) Restore(ctx context.Context) (Project, error) {
	candidate, gen, ok := s.undo.Take()
	if !ok {
		return Project{}, ErrNothingToUndo
	}

	now := time.Now().In(s.location)
	item := candidate
	item.ID = primitive.NewObjectID().Hex()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Insert(ctx, item); err != nil {
		s.undo.Restock(candidate, gen)
		return Project{}, err
	}
	return item, nil
}

// PendingUndo reports the candidate currently available for restore.
func (s *Service) PendingUndo() (Project, bool) {
	return s.undo.Peek()
}

// DismissUndo drops the candidate; the deletion becomes final.
func (s *Service) DismissUndo() {
	s.undo.Clear()
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func normalizeImages(urls []string) []string {
	images := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u != "" {
			images = append(images, u)
		}
	}
	return images
}
