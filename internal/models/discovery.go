package models

import "time"

// Discovery is a curated highlight extracted from a parent's answer,
// shown in the dashboard gallery. Not computed by any algorithm.
type Discovery struct {
	ID          int64
	ChildUserID int64
	QuestionID  *int64
	Title       string
	Content     string
	Tag         string
	CreatedAt   time.Time
}
