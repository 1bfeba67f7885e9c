package projects

import (
	"fmt"
	"testing"
)

func sampleProjects() []Project {
	return []Project{
		{ID: "a", Title: "Глянцева стеля у вітальні", Date: "2025-05-12"},
		{ID: "b", Title: "Матова стеля у спальні", Date: "2025-06-03"},
		{ID: "c", Title: "Сатинова стеля на кухні", Date: "2025-06-03"},
		{ID: "d", Title: "Парящі лінії в коридорі", Date: "2025-08-02"},
		{ID: "e", Title: "Ceiling with LED strip", Date: "2025-01-20"},
	}
}

func TestFilterByTitleCaseInsensitive(t *testing.T) {
	items := sampleProjects()
	filtered := FilterByTitle(items, "СТЕЛЯ")
	if len(filtered) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(filtered))
	}
	if filtered[0].ID != "a" || filtered[1].ID != "b" || filtered[2].ID != "c" {
		t.Fatalf("filter changed relative order: %v", filtered)
	}

	filtered = FilterByTitle(items, "ceiling")
	if len(filtered) != 1 || filtered[0].ID != "e" {
		t.Fatalf("expected only e, got %v", filtered)
	}
}

func TestFilterByTitleEmptyQuery(t *testing.T) {
	items := sampleProjects()
	filtered := FilterByTitle(items, "")
	if len(filtered) != len(items) {
		t.Fatalf("empty query must keep everything, got %d of %d", len(filtered), len(items))
	}
	for i := range items {
		if filtered[i].ID != items[i].ID {
			t.Fatalf("empty query changed order at %d", i)
		}
	}
}

func TestFilterByTitleNoMatch(t *testing.T) {
	filtered := FilterByTitle(sampleProjects(), "підвал")
	if len(filtered) != 0 {
		t.Fatalf("expected no matches, got %v", filtered)
	}
}

func TestSortByDateDesc(t *testing.T) {
	sorted := SortByDate(sampleProjects(), SortDateDesc)
	want := []string{"d", "b", "c", "a", "e"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, sorted[i].ID)
		}
	}
}

func TestSortByDateAsc(t *testing.T) {
	sorted := SortByDate(sampleProjects(), SortDateAsc)
	want := []string{"e", "a", "b", "c", "d"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, sorted[i].ID)
		}
	}
}

func TestSortByDateStable(t *testing.T) {
	// b and c share 2025-06-03 and must keep their input order in both
	// directions.
	for _, order := range []string{SortDateDesc, SortDateAsc} {
		sorted := SortByDate(sampleProjects(), order)
		bIdx, cIdx := -1, -1
		for i, p := range sorted {
			switch p.ID {
			case "b":
				bIdx = i
			case "c":
				cIdx = i
			}
		}
		if bIdx == -1 || cIdx == -1 || bIdx > cIdx {
			t.Fatalf("order %s: equal dates reordered (b=%d c=%d)", order, bIdx, cIdx)
		}
	}
}

func TestSortByDateUnknownOrderFallsBackDesc(t *testing.T) {
	sorted := SortByDate(sampleProjects(), "title-asc")
	if sorted[0].ID != "d" {
		t.Fatalf("unknown order should fall back to date-desc, got %s first", sorted[0].ID)
	}
}

func TestSortByDateDoesNotMutateInput(t *testing.T) {
	items := sampleProjects()
	_ = SortByDate(items, SortDateAsc)
	if items[0].ID != "a" {
		t.Fatalf("input slice mutated: %v", items)
	}
}

func TestPaginateCoversAllItems(t *testing.T) {
	items := make([]Project, 25)
	for i := range items {
		items[i] = Project{ID: fmt.Sprintf("p%02d", i)}
	}

	first := Paginate(items, 1, 9)
	if first.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", first.TotalPages)
	}
	if first.Total != 25 {
		t.Fatalf("expected total 25, got %d", first.Total)
	}

	seen := make(map[string]bool)
	count := 0
	for page := 1; page <= first.TotalPages; page++ {
		p := Paginate(items, page, 9)
		for _, item := range p.Items {
			if seen[item.ID] {
				t.Fatalf("item %s appears on more than one page", item.ID)
			}
			seen[item.ID] = true
			count++
		}
	}
	if count != len(items) {
		t.Fatalf("pages cover %d items, want %d", count, len(items))
	}
}

func TestPaginateLastPagePartial(t *testing.T) {
	items := make([]Project, 10)
	for i := range items {
		items[i] = Project{ID: fmt.Sprintf("p%d", i)}
	}
	last := Paginate(items, 2, 9)
	if len(last.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(last.Items))
	}
	if last.Items[0].ID != "p9" {
		t.Fatalf("unexpected last page content: %v", last.Items)
	}
}

func TestPaginateEmptySet(t *testing.T) {
	p := Paginate(nil, 1, 9)
	if p.TotalPages != 1 {
		t.Fatalf("empty set must report 1 page, got %d", p.TotalPages)
	}
	if len(p.Items) != 0 {
		t.Fatalf("expected no items, got %v", p.Items)
	}
}

func TestPaginateBeyondLastPage(t *testing.T) {
	items := sampleProjects()
	p := Paginate(items, 7, 9)
	if len(p.Items) != 0 {
		t.Fatalf("page past the end must be empty, got %v", p.Items)
	}
	if p.TotalPages != 1 {
		t.Fatalf("expected 1 total page, got %d", p.TotalPages)
	}
}
