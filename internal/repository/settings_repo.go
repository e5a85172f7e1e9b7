package repository

import (
	"maeumbaedal/internal/database"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertSettings()
	_, err := r.db.Exec(query, key, value)
	return err
}

// IsDailySendPaused checks if the daily delivery loop has been paused
// from the dev settings screen.
func (r *SettingsRepository) IsDailySendPaused() bool {
	value, err := r.GetSetting("daily_send_paused")
	if err != nil {
		return false // default to sending
	}
	return value == "true"
}

// SetDailySendPaused pauses or resumes daily delivery
func (r *SettingsRepository) SetDailySendPaused(paused bool) error {
	value := "false"
	if paused {
		value = "true"
	}
	return r.SetSetting("daily_send_paused", value)
}
