package projects

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRepository keeps projects in a slice and records calls, standing
// in for the mongo-backed repository.
type fakeRepository struct {
	items      []Project
	insertErr  error
	listCalls  int
	storeCalls int
}

func (f *fakeRepository) List(ctx context.Context) ([]Project, error) {
	f.listCalls++
	out := make([]Project, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeRepository) ListPublic(ctx context.Context, filter PublicListFilter) ([]Project, error) {
	if filter.Category == "" {
		return f.List(ctx)
	}
	var out []Project
	for _, item := range f.items {
		if item.Category == filter.Category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (Project, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return Project{}, mongo.ErrNoDocuments
}

func (f *fakeRepository) Insert(ctx context.Context, item Project) error {
	f.storeCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, id string, set bson.M) (Project, error) {
	f.storeCalls++
	for i, item := range f.items {
		if item.ID != id {
			continue
		}
		if v, ok := set["title"].(string); ok {
			item.Title = v
		}
		if v, ok := set["description"].(string); ok {
			item.Description = v
		}
		if v, ok := set["category"].(string); ok {
			item.Category = v
		}
		if v, ok := set["date"].(string); ok {
			item.Date = v
		}
		if v, ok := set["image_url"].(string); ok {
			item.ImageURL = v
		}
		if v, ok := set["images"].([]string); ok {
			item.Images = v
		}
		if v, ok := set["updated_at"].(time.Time); ok {
			item.UpdatedAt = v
		}
		f.items[i] = item
		return item, nil
	}
	return Project{}, mongo.ErrNoDocuments
}

func (f *fakeRepository) Delete(ctx context.Context, id string) (bool, error) {
	f.storeCalls++
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, NewUndoTracker(time.Minute), time.UTC)
}

func validDraft() Draft {
	return Draft{
		Title:       "Глянцева стеля у вітальні",
		Description: "Дворівнева глянцева стеля",
		Category:    CategoryMSDClassic,
		Date:        "2025-05-12",
		ImageURL:    "/uploads/a.jpg",
		Images:      []string{"/uploads/b.jpg"},
	}
}

func TestSaveInsert(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	saved, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("insert must assign an id")
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored project, got %d", len(repo.items))
	}

	got, err := repo.GetByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != saved.Title || got.Date != saved.Date || got.ImageURL != saved.ImageURL {
		t.Fatalf("stored project differs from returned one: %v vs %v", got, saved)
	}
}

func TestSaveUpdate(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	saved, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	draft := validDraft()
	draft.ID = saved.ID
	draft.Title = "Оновлена назва"
	updated, err := svc.Save(context.Background(), draft)
	if err != nil {
		t.Fatalf("Save update error: %v", err)
	}
	if updated.ID != saved.ID {
		t.Fatalf("update must keep the id, got %s", updated.ID)
	}
	if updated.Title != "Оновлена назва" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if len(repo.items) != 1 {
		t.Fatalf("update must not create a second record")
	}
}

func TestSaveUpdateMissing(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	draft := validDraft()
	draft.ID = "does-not-exist"
	if _, err := svc.Save(context.Background(), draft); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveValidationGateSkipsStore(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	draft := validDraft()
	draft.Title = ""
	_, err := svc.Save(context.Background(), draft)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["title"] == "" {
		t.Fatalf("expected title problem, got %v", ve.Fields)
	}
	if repo.storeCalls != 0 {
		t.Fatalf("a rejected draft must never reach the store, saw %d calls", repo.storeCalls)
	}
}

func TestSaveDefaultsCategory(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	draft := validDraft()
	draft.Category = ""
	saved, err := svc.Save(context.Background(), draft)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if saved.Category != CategoryMSDClassic {
		t.Fatalf("expected default category, got %q", saved.Category)
	}
}

func TestDeleteArmsUndo(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	saved, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	candidate, err := svc.Delete(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if candidate.ID != "" {
		t.Fatalf("returned candidate must not carry the deleted id")
	}
	if len(repo.items) != 0 {
		t.Fatalf("project not removed from store")
	}

	pending, ok := svc.PendingUndo()
	if !ok {
		t.Fatalf("expected a pending undo candidate")
	}
	if pending.Title != saved.Title {
		t.Fatalf("undo candidate mismatch: %q", pending.Title)
	}
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestService(&fakeRepository{})
	if _, err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := svc.PendingUndo(); ok {
		t.Fatalf("failed delete must not arm undo")
	}
}

func TestRestoreCreatesNewID(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	saved, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	originalID := saved.ID

	if _, err := svc.Delete(context.Background(), originalID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	restored, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if restored.ID == "" || restored.ID == originalID {
		t.Fatalf("restore must mint a fresh id, got %q (was %q)", restored.ID, originalID)
	}
	if restored.Title != saved.Title {
		t.Fatalf("restored content differs: %q", restored.Title)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 project after restore, got %d", len(repo.items))
	}

	if _, err := svc.Restore(context.Background()); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("second restore must fail with ErrNothingToUndo, got %v", err)
	}
}

func TestRestoreAfterSupersedingDelete(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	first, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	secondDraft := validDraft()
	secondDraft.Title = "Друга стеля"
	second, err := svc.Save(context.Background(), secondDraft)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if _, err := svc.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.Delete(context.Background(), second.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	restored, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if restored.Title != "Друга стеля" {
		t.Fatalf("only the newest delete is restorable, got %q", restored.Title)
	}
}

func TestRestoreFailureRestocks(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	saved, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := svc.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	repo.insertErr = errors.New("store down")
	if _, err := svc.Restore(context.Background()); err == nil {
		t.Fatalf("expected restore to fail")
	}

	// The candidate stays available for a retry.
	repo.insertErr = nil
	restored, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatalf("retry after failed restore: %v", err)
	}
	if restored.Title != saved.Title {
		t.Fatalf("unexpected restored project %q", restored.Title)
	}
}

func TestDismissUndo(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(repo)

	saved, err := svc.Save(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := svc.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	svc.DismissUndo()
	if _, err := svc.Restore(context.Background()); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo after dismiss, got %v", err)
	}
}

func TestBrowseResetsPageWhenBeyondTotal(t *testing.T) {
	repo := &fakeRepository{}
	for i := 0; i < 12; i++ {
		repo.items = append(repo.items, Project{
			ID:    fmt.Sprintf("p%02d", i),
			Title: fmt.Sprintf("Стеля %02d", i),
			Date:  fmt.Sprintf("2025-03-%02d", i+1),
		})
	}
	svc := newTestService(repo)

	// 12 items titled "Стеля NN": page 2 exists until the filter narrows
	// the set below one page.
	page, err := svc.Browse(context.Background(), ListQuery{Page: 2}, 9)
	if err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if page.Page != 2 || len(page.Items) != 3 {
		t.Fatalf("expected page 2 with 3 items, got page %d with %d", page.Page, len(page.Items))
	}

	page, err = svc.Browse(context.Background(), ListQuery{Search: "Стеля 03", Page: 2}, 9)
	if err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("page beyond the narrowed total must reset to 1, got %d", page.Page)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "p03" {
		t.Fatalf("unexpected filtered result: %v", page.Items)
	}
}

func TestBrowsePipelineOrder(t *testing.T) {
	repo := &fakeRepository{
		items: []Project{
			{ID: "a", Title: "Матова стеля", Date: "2025-01-10"},
			{ID: "b", Title: "Глянцева стеля", Date: "2025-03-01"},
			{ID: "c", Title: "Фартух кухні", Date: "2025-02-15"},
		},
	}
	svc := newTestService(repo)

	page, err := svc.Browse(context.Background(), ListQuery{Search: "стеля", Sort: SortDateAsc, Page: 1}, 9)
	if err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(page.Items))
	}
	if page.Items[0].ID != "a" || page.Items[1].ID != "b" {
		t.Fatalf("expected ascending date order a,b got %v", page.Items)
	}
}
