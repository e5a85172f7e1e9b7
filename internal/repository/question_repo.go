package repository

import (
	"database/sql"
	"errors"
	"time"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"

	"github.com/google/uuid"
)

type QuestionRepository struct {
	db *database.DB
}

func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateQuestion inserts a question in the sent state. The parent access
// token is generated here; callers consume it from the returned row.
func (r *QuestionRepository) CreateQuestion(childUserID int64, questionText string) (*models.Question, error) {
	token := uuid.New().String()

	query := `INSERT INTO questions (child_user_id, question_text, status, parent_access_token)
		VALUES (?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, childUserID, questionText, models.StatusSent, token)
	if err != nil {
		return nil, err
	}

	return &models.Question{
		ID:                id,
		ChildUserID:       childUserID,
		QuestionText:      questionText,
		Status:            models.StatusSent,
		SentAt:            time.Now(),
		ParentAccessToken: token,
		CreatedAt:         time.Now(),
	}, nil
}

const questionColumns = `id, child_user_id, parent_user_id, question_text, status, sent_at,
	answered_at, answer_text, parent_access_token, child_followup_text, child_followup_sent_at,
	created_at, updated_at`

func scanQuestion(scan func(dest ...interface{}) error) (*models.Question, error) {
	var q models.Question
	var parentUserID sql.NullInt64
	var answeredAt, followupSentAt sql.NullTime
	var answerText, followupText sql.NullString

	err := scan(
		&q.ID, &q.ChildUserID, &parentUserID, &q.QuestionText, &q.Status, &q.SentAt,
		&answeredAt, &answerText, &q.ParentAccessToken, &followupText, &followupSentAt,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentUserID.Valid {
		q.ParentUserID = &parentUserID.Int64
	}
	if answeredAt.Valid {
		q.AnsweredAt = &answeredAt.Time
	}
	if followupSentAt.Valid {
		q.ChildFollowupSentAt = &followupSentAt.Time
	}
	q.AnswerText = answerText.String
	q.ChildFollowupText = followupText.String

	return &q, nil
}

// GetByIDAndToken fetches a question only when both the id and the access
// token match; a miss returns nil so callers render one generic
// invalid-link message.
func (r *QuestionRepository) GetByIDAndToken(id int64, token string) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ? AND parent_access_token = ?`
	q, err := scanQuestion(r.db.QueryRow(query, id, token).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByIDForChild fetches a question owned by the given child user
func (r *QuestionRepository) GetByIDForChild(id, childUserID int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ? AND child_user_id = ?`
	q, err := scanQuestion(r.db.QueryRow(query, id, childUserID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByChild returns the child's questions, newest first
func (r *QuestionRepository) ListByChild(childUserID int64) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE child_user_id = ? ORDER BY sent_at DESC`
	return r.listQuestions(query, childUserID)
}

// ListByToken resolves an access token to its child and returns that
// child's whole question history, newest first. Tokens are minted per
// question, so any one valid token opens the full parent-facing thread.
func (r *QuestionRepository) ListByToken(token string) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE child_user_id = (SELECT child_user_id FROM questions WHERE parent_access_token = ?)
		ORDER BY sent_at DESC`
	return r.listQuestions(query, token)
}

func (r *QuestionRepository) listQuestions(query string, args ...interface{}) ([]models.Question, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	return questions, rows.Err()
}

// SubmitAnswer records the parent's answer. The update is filtered by
// id+token and by answer_text still being empty, so a stale or tampered
// link and a second submission both affect zero rows.
func (r *QuestionRepository) SubmitAnswer(id int64, token, answerText string) (bool, error) {
	query := `UPDATE questions
		SET answer_text = ?, answered_at = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND parent_access_token = ? AND (answer_text IS NULL OR answer_text = '')`
	result, err := r.db.Exec(query, answerText, time.Now(), models.StatusAnswered, id, token)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetFollowup records the child's one follow-up. Ownership is enforced by
// the child_user_id filter, single use by the empty-followup filter.
func (r *QuestionRepository) SetFollowup(id, childUserID int64, followupText string) (bool, error) {
	query := `UPDATE questions
		SET child_followup_text = ?, child_followup_sent_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND child_user_id = ? AND (child_followup_text IS NULL OR child_followup_text = '')`
	result, err := r.db.Exec(query, followupText, time.Now(), id, childUserID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CountByChild returns total and answered question counts for the dashboard
func (r *QuestionRepository) CountByChild(childUserID int64) (total, answered int, err error) {
	query := `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN answer_text IS NOT NULL AND answer_text != '' THEN 1 ELSE 0 END), 0)
		FROM questions WHERE child_user_id = ?`
	err = r.db.QueryRow(query, childUserID).Scan(&total, &answered)
	return total, answered, err
}

// HasQuestionSince reports whether the child already has a question sent
// at or after the given time. The daily delivery loop uses this to send at
// most one question per day.
func (r *QuestionRepository) HasQuestionSince(childUserID int64, since time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM questions WHERE child_user_id = ? AND sent_at >= ?`
	err := r.db.QueryRow(query, childUserID, since).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SentDates returns the distinct local dates on which the child sent
// questions, newest first. Used to compute the streak.
func (r *QuestionRepository) SentDates(childUserID int64) ([]time.Time, error) {
	query := `SELECT sent_at FROM questions WHERE child_user_id = ? ORDER BY sent_at DESC`
	rows, err := r.db.Query(query, childUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var sentAt time.Time
		if err := rows.Scan(&sentAt); err != nil {
			return nil, err
		}
		dates = append(dates, sentAt)
	}

	return dates, rows.Err()
}
