package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"
)

type ProfileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile inserts the single profile row for a user. The onboarding
// payload is stored as JSON in the free-form onboarding_data column.
func (r *ProfileRepository) CreateProfile(userID int64, role, name, phoneNumber, preferredTime string, onboarding *models.OnboardingData) (*models.Profile, error) {
	var payload sql.NullString
	if onboarding != nil {
		data, err := json.Marshal(onboarding)
		if err != nil {
			return nil, fmt.Errorf("failed to encode onboarding data: %w", err)
		}
		payload = sql.NullString{String: string(data), Valid: true}
	}

	query := `INSERT INTO profiles (user_id, role, name, phone_number, preferred_time, onboarding_data)
		VALUES (?, ?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, userID, role, name, phoneNumber, preferredTime, payload)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:            id,
		UserID:        userID,
		Role:          role,
		Name:          name,
		PhoneNumber:   phoneNumber,
		PreferredTime: preferredTime,
		Onboarding:    onboarding,
		CreatedAt:     time.Now(),
	}, nil
}

// GetProfileByUserID retrieves a user's profile, returning nil when the
// user has not completed onboarding yet.
func (r *ProfileRepository) GetProfileByUserID(userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, role, name, phone_number, preferred_time, onboarding_data, created_at, updated_at
		FROM profiles WHERE user_id = ?
	`
	var profile models.Profile
	var phone, preferred, payload sql.NullString
	err := r.db.QueryRow(query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Role, &profile.Name,
		&phone, &preferred, &payload, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile.PhoneNumber = phone.String
	profile.PreferredTime = preferred.String

	if payload.Valid && payload.String != "" {
		var onboarding models.OnboardingData
		if err := json.Unmarshal([]byte(payload.String), &onboarding); err != nil {
			return nil, fmt.Errorf("failed to decode onboarding data: %w", err)
		}
		profile.Onboarding = &onboarding
	}

	return &profile, nil
}

// UpdateProfile saves the editable settings fields
func (r *ProfileRepository) UpdateProfile(userID int64, name, preferredTime string) error {
	query := `UPDATE profiles SET name = ?, preferred_time = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`
	_, err := r.db.Exec(query, name, preferredTime, userID)
	return err
}

// UpdateOnboardingData rewrites the free-form onboarding payload
func (r *ProfileRepository) UpdateOnboardingData(userID int64, onboarding *models.OnboardingData) error {
	data, err := json.Marshal(onboarding)
	if err != nil {
		return fmt.Errorf("failed to encode onboarding data: %w", err)
	}

	query := `UPDATE profiles SET onboarding_data = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`
	_, err = r.db.Exec(query, string(data), userID)
	return err
}

// ListBySendHour returns child profiles whose preferred delivery slot maps
// to the given local hour. Used by the daily delivery loop.
func (r *ProfileRepository) ListBySendHour(hour int) ([]models.Profile, error) {
	var slot string
	switch hour {
	case 9:
		slot = models.TimeMorning
	case 14:
		slot = models.TimeAfternoon
	case 19:
		slot = models.TimeEvening
	default:
		return nil, nil
	}

	query := `
		SELECT id, user_id, role, name, phone_number, preferred_time, onboarding_data, created_at, updated_at
		FROM profiles WHERE role = ? AND preferred_time = ?
	`
	rows, err := r.db.Query(query, models.RoleChild, slot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		var phone, preferred, payload sql.NullString
		if err := rows.Scan(
			&profile.ID, &profile.UserID, &profile.Role, &profile.Name,
			&phone, &preferred, &payload, &profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profile.PhoneNumber = phone.String
		profile.PreferredTime = preferred.String
		if payload.Valid && payload.String != "" {
			var onboarding models.OnboardingData
			if err := json.Unmarshal([]byte(payload.String), &onboarding); err != nil {
				return nil, fmt.Errorf("failed to decode onboarding data: %w", err)
			}
			profile.Onboarding = &onboarding
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}
