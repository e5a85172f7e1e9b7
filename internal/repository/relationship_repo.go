package repository

import (
	"database/sql"
	"errors"
	"time"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"
)

type RelationshipRepository struct {
	db *database.DB
}

func NewRelationshipRepository(db *database.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// CreateRelationship inserts a relationship row. Onboarding calls this
// directly without a uniqueness check; settings goes through
// UpsertByChildUserID instead.
func (r *RelationshipRepository) CreateRelationship(childUserID int64, parentName, parentPhone, relationship string) (*models.ParentChildRelationship, error) {
	query := `INSERT INTO parent_child_relationships (child_user_id, parent_name, parent_phone, relationship)
		VALUES (?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, childUserID, parentName, parentPhone, relationship)
	if err != nil {
		return nil, err
	}

	return &models.ParentChildRelationship{
		ID:           id,
		ChildUserID:  childUserID,
		ParentName:   parentName,
		ParentPhone:  parentPhone,
		Relationship: relationship,
		CreatedAt:    time.Now(),
	}, nil
}

// GetByChildUserID returns the child's most recent relationship row, or
// nil when none exists.
func (r *RelationshipRepository) GetByChildUserID(childUserID int64) (*models.ParentChildRelationship, error) {
	query := `
		SELECT id, child_user_id, parent_user_id, parent_name, parent_phone, relationship, created_at, updated_at
		FROM parent_child_relationships
		WHERE child_user_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	var rel models.ParentChildRelationship
	var parentUserID sql.NullInt64
	err := r.db.QueryRow(query, childUserID).Scan(
		&rel.ID, &rel.ChildUserID, &parentUserID, &rel.ParentName,
		&rel.ParentPhone, &rel.Relationship, &rel.CreatedAt, &rel.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if parentUserID.Valid {
		rel.ParentUserID = &parentUserID.Int64
	}

	return &rel, nil
}

// UpsertByChildUserID updates the child's relationship row if one exists,
// otherwise inserts it. The table carries no unique key on child_user_id,
// so the conflict handling lives here rather than in SQL.
func (r *RelationshipRepository) UpsertByChildUserID(childUserID int64, parentName, parentPhone, relationship string) error {
	query := `UPDATE parent_child_relationships
		SET parent_name = ?, parent_phone = ?, relationship = ?, updated_at = CURRENT_TIMESTAMP
		WHERE child_user_id = ?`
	result, err := r.db.Exec(query, parentName, parentPhone, relationship, childUserID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = r.CreateRelationship(childUserID, parentName, parentPhone, relationship)
	return err
}
