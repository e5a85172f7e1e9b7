package models

import "time"

// Question lifecycle states. The progression is linear:
// sent -> answered, plus an optional one-time child follow-up.
const (
	StatusSent     = "sent"
	StatusAnswered = "answered"
)

// Question is the central entity: one question sent by a child, optionally
// answered by the parent through the tokenized link, optionally followed
// up once by the child.
type Question struct {
	ID                  int64
	ChildUserID         int64
	ParentUserID        *int64
	QuestionText        string
	Status              string
	SentAt              time.Time
	AnsweredAt          *time.Time
	AnswerText          string
	ParentAccessToken   string
	ChildFollowupText   string
	ChildFollowupSentAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsAnswered reports whether the parent has answered.
func (q *Question) IsAnswered() bool {
	return q.AnswerText != ""
}

// HasFollowup reports whether the child already sent their one follow-up.
func (q *Question) HasFollowup() bool {
	return q.ChildFollowupText != ""
}

// CanFollowUp reports whether userID may compose a follow-up: the question
// must be theirs, answered, and not yet followed up.
func (q *Question) CanFollowUp(userID int64) bool {
	return q.ChildUserID == userID && q.IsAnswered() && !q.HasFollowup()
}
