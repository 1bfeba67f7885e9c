package projects

import (
	"sort"
	"strings"
	"time"
)

const (
	SortDateDesc = "date-desc"
	SortDateAsc  = "date-asc"
)

// ListQuery carries the user-controlled view state of the admin gallery:
// free-text search over titles, a two-valued date sort toggle and a
// 1-based page number.
type ListQuery struct {
	Search string
	Sort   string
	Page   int
}

// Page is one slice of the filtered and sorted set. TotalPages is never
// below 1, even for an empty result.
type Page struct {
	Items      []Project `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
}

// FilterByTitle keeps the projects whose title contains the query as a
// case-insensitive substring. An empty query keeps everything, order
// untouched.
func FilterByTitle(items []Project, query string) []Project {
	query = strings.ToLower(query)
	if query == "" {
		return items
	}
	filtered := make([]Project, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SortByDate orders by calendar date. The sort is stable: projects with
// equal dates keep their relative order from the input, which keeps
// paginated output deterministic. Unknown sort values fall back to
// date-desc. Unparseable dates sort as the zero time.
func SortByDate(items []Project, order string) []Project {
	sorted := make([]Project, len(items))
	copy(sorted, items)

	asc := order == SortDateAsc
	sort.SliceStable(sorted, func(i, j int) bool {
		a := parseDate(sorted[i].Date)
		b := parseDate(sorted[j].Date)
		if asc {
			return a.Before(b)
		}
		return b.Before(a)
	})
	return sorted
}

// Paginate slices items into contiguous pages of size pageSize and
// returns the requested one. Pages concatenate back to the input with no
// duplicates or omissions. A page past the last one yields an empty
// page, not an error; callers that track view state reset to page 1
// instead (see Service.Browse).
func Paginate(items []Project, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

func parseDate(value string) time.Time {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
