package repository

import (
	"database/sql"
	"time"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"
)

type DiscoveryRepository struct {
	db *database.DB
}

func NewDiscoveryRepository(db *database.DB) *DiscoveryRepository {
	return &DiscoveryRepository{db: db}
}

// CreateDiscovery stores a curated highlight, optionally tied to a question
func (r *DiscoveryRepository) CreateDiscovery(childUserID int64, questionID *int64, title, content, tag string) (*models.Discovery, error) {
	var qid sql.NullInt64
	if questionID != nil {
		qid = sql.NullInt64{Int64: *questionID, Valid: true}
	}

	query := `INSERT INTO discoveries (child_user_id, question_id, title, content, tag) VALUES (?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, childUserID, qid, title, content, tag)
	if err != nil {
		return nil, err
	}

	return &models.Discovery{
		ID:          id,
		ChildUserID: childUserID,
		QuestionID:  questionID,
		Title:       title,
		Content:     content,
		Tag:         tag,
		CreatedAt:   time.Now(),
	}, nil
}

// ListByChild returns the child's discovery gallery, newest first
func (r *DiscoveryRepository) ListByChild(childUserID int64) ([]models.Discovery, error) {
	query := `
		SELECT id, child_user_id, question_id, title, content, tag, created_at
		FROM discoveries WHERE child_user_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, childUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discoveries []models.Discovery
	for rows.Next() {
		var d models.Discovery
		var qid sql.NullInt64
		if err := rows.Scan(&d.ID, &d.ChildUserID, &qid, &d.Title, &d.Content, &d.Tag, &d.CreatedAt); err != nil {
			return nil, err
		}
		if qid.Valid {
			d.QuestionID = &qid.Int64
		}
		discoveries = append(discoveries, d)
	}

	return discoveries, rows.Err()
}

// CountByChild returns the number of discoveries for the dashboard stats
func (r *DiscoveryRepository) CountByChild(childUserID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM discoveries WHERE child_user_id = ?`
	err := r.db.QueryRow(query, childUserID).Scan(&count)
	return count, err
}
