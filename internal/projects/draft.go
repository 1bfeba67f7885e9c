package projects

import (
	"time"
)

// Draft is an in-memory, not-yet-persisted project being edited. A
// draft without an ID saves as an insert; with an ID, as an update.
// Missing fields are well-defined empties rather than an untyped merge:
// the constructor fills the same defaults the admin form starts from.
type Draft struct {
	ID          string
	Title       string
	Description string
	Category    string
	Date        string
	ImageURL    string
	Images      []string
}

func NewDraft(now time.Time) Draft {
	return Draft{
		Category: CategoryMSDClassic,
		Date:     now.Format(DateLayout),
		Images:   []string{},
	}
}

// SetCover replaces the single primary-image slot.
func (d *Draft) SetCover(url string) {
	d.ImageURL = url
}

// AppendImages appends a finished upload batch to the secondary list, in
// the order the uploads resolved.
func (d *Draft) AppendImages(urls ...string) {
	d.Images = append(d.Images, urls...)
}

// RemoveImage drops exactly the entry at idx, preserving the relative
// order of the rest. Out-of-range indexes are ignored.
func (d *Draft) RemoveImage(idx int) bool {
	if idx < 0 || idx >= len(d.Images) {
		return false
	}
	d.Images = append(d.Images[:idx], d.Images[idx+1:]...)
	return true
}

// Validate reports per-field problems. An empty map means the draft may
// be saved. Valid fields are never touched; the caller keeps the draft
// intact so the user can fix only what is flagged.
func (d *Draft) Validate() map[string]string {
	problems := make(map[string]string)
	if d.Title == "" {
		problems["title"] = "required"
	}
	if d.Description == "" {
		problems["description"] = "required"
	}
	if d.Date == "" {
		problems["date"] = "required"
	} else if _, err := time.Parse(DateLayout, d.Date); err != nil {
		problems["date"] = "date"
	}
	if d.ImageURL == "" {
		problems["image_url"] = "required"
	}
	if d.Category != "" && !IsValidCategory(d.Category) {
		problems["category"] = "oneof"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}
