package models

import "time"

// QuestionTemplate is a catalog entry offering pre-written question text
// and a category label. Immutable from the app's perspective.
type QuestionTemplate struct {
	ID           int64
	Category     string
	QuestionText string
	IsActive     bool
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
