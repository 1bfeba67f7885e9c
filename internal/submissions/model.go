package submissions

import "time"

// Submission is a lead captured from the public contact form. It is
// append-only from the site: no update operation exists anywhere, the
// admin panel can only read and delete. Timestamp is stamped by the
// inserting side, not by the store.
type Submission struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Phone          string    `bson:"phone" json:"phone"`
	Email          string    `bson:"email" json:"email"`
	ProjectDetails string    `bson:"project_details" json:"project_details"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

type CreateRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required,phone"`
	Email          string `json:"email" validate:"required,email"`
	ProjectDetails string `json:"project_details" validate:"required"`
}
