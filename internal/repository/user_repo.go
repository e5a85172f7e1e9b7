package repository

import (
	"database/sql"
	"errors"
	"time"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user account
func (r *UserRepository) CreateUser(email, passwordHash, name string) (*models.User, error) {
	query := `INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserByEmail retrieves a user by email, returning nil when no account exists
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at
		FROM users WHERE email = ?
	`
	var user models.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.OAuthProvider, &user.OAuthSubject, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID, returning nil when no account exists
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at
		FROM users WHERE id = ?
	`
	var user models.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.OAuthProvider, &user.OAuthSubject, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at
		FROM users WHERE oauth_provider = ? AND oauth_subject = ?
	`
	var user models.User
	err := r.db.QueryRow(query, provider, subject).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.OAuthProvider, &user.OAuthSubject, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkOAuthProvider attaches an OAuth identity to an existing account
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `UPDATE users SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.Exec(query, provider, subject, userID)
	return err
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.Exec(query, passwordHash, userID)
	return err
}

// CreateSession stores a new session row
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, err
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID, returning nil when not found
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?`
	var session models.Session
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	_, err := r.db.Exec(query, sessionID)
	return err
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	query := `DELETE FROM sessions WHERE expires_at < ?`
	_, err := r.db.Exec(query, time.Now())
	return err
}

// CreatePasswordResetToken stores a new reset token
func (r *UserRepository) CreatePasswordResetToken(token string, userID int64, expiresAt time.Time) error {
	query := `INSERT INTO password_reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, token, userID, expiresAt)
	return err
}

// GetPasswordResetToken retrieves a reset token, returning nil when not found
func (r *UserRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `SELECT token, user_id, expires_at, created_at, used FROM password_reset_tokens WHERE token = ?`
	var rt models.PasswordResetToken
	err := r.db.QueryRow(query, token).Scan(
		&rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt, &rt.Used,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// MarkPasswordResetTokenAsUsed flags a reset token as consumed
func (r *UserRepository) MarkPasswordResetTokenAsUsed(token string) error {
	query := `UPDATE password_reset_tokens SET used = ` + r.db.Dialect.BoolValue(true) + ` WHERE token = ?`
	_, err := r.db.Exec(query, token)
	return err
}

// DeleteUserPasswordResetTokens removes all reset tokens for a user
func (r *UserRepository) DeleteUserPasswordResetTokens(userID int64) error {
	query := `DELETE FROM password_reset_tokens WHERE user_id = ?`
	_, err := r.db.Exec(query, userID)
	return err
}

// DeleteExpiredPasswordResetTokens removes expired reset tokens
func (r *UserRepository) DeleteExpiredPasswordResetTokens() error {
	query := `DELETE FROM password_reset_tokens WHERE expires_at < ?`
	_, err := r.db.Exec(query, time.Now())
	return err
}
