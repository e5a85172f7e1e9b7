package service

import (
	"fmt"
	"log"
	"maeumbaedal/internal/database"
)

// MaintenanceService clears data for development and test environments.
// It backs the dev settings screen and the maintenance CLI.
type MaintenanceService struct {
	db *database.DB
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(db *database.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// ClearUserData deletes everything belonging to one user: discoveries,
// questions, relationships, profile, tokens, sessions, and finally the
// account row. Question templates and settings are left alone.
func (s *MaintenanceService) ClearUserData(userID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM discoveries WHERE child_user_id = ?`,
		`DELETE FROM questions WHERE child_user_id = ?`,
		`DELETE FROM parent_child_relationships WHERE child_user_id = ?`,
		`DELETE FROM profiles WHERE user_id = ?`,
		`DELETE FROM password_reset_tokens WHERE user_id = ?`,
		`DELETE FROM sessions WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt, userID); err != nil {
			return fmt.Errorf("failed to clear user data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Printf("Cleared all data for user %d", userID)
	return nil
}

// ClearAllData wipes every user-generated table. The question template
// catalog and app settings survive.
func (s *MaintenanceService) ClearAllData() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM discoveries`,
		`DELETE FROM questions`,
		`DELETE FROM parent_child_relationships`,
		`DELETE FROM profiles`,
		`DELETE FROM password_reset_tokens`,
		`DELETE FROM sessions`,
		`DELETE FROM users`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Println("Cleared all user data")
	return nil
}
