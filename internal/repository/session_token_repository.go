package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"togetherbikes/internal/domain"
)

var (
	ErrSessionTokenNotFound = errors.New("session token not found")
	ErrSessionTokenRevoked  = errors.New("session token has been revoked")
)

// SessionTokenRepository tracks issued session tokens so sign-out can revoke
// them server-side. FindByToken fails for revoked tokens; Revoke is
// idempotent so repeated sign-outs with the same token succeed.
type SessionTokenRepository interface {
	Create(ctx context.Context, token *domain.SessionToken) error
	FindByToken(ctx context.Context, token string) (*domain.SessionToken, error)
	Revoke(ctx context.Context, token string) error
}

type sessionTokenRepository struct {
	db *sql.DB
}

// NewSessionTokenRepository creates a Postgres-backed SessionTokenRepository
func NewSessionTokenRepository(db *sql.DB) SessionTokenRepository {
	return &sessionTokenRepository{db: db}
}

// Create inserts a new session token record
func (r *sessionTokenRepository) Create(ctx context.Context, token *domain.SessionToken) error {
	query := `
		INSERT INTO session_tokens (id, user_id, token, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
		token.Revoked,
	)

	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}

	return nil
}

// FindByToken retrieves a session token record by its token string
func (r *sessionTokenRepository) FindByToken(ctx context.Context, token string) (*domain.SessionToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at, revoked
		FROM session_tokens
		WHERE token = $1
	`

	sessionToken := &domain.SessionToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&sessionToken.ID,
		&sessionToken.UserID,
		&sessionToken.Token,
		&sessionToken.ExpiresAt,
		&sessionToken.CreatedAt,
		&sessionToken.Revoked,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionTokenNotFound
		}
		return nil, fmt.Errorf("failed to find session token: %w", err)
	}

	if sessionToken.Revoked {
		return nil, ErrSessionTokenRevoked
	}

	return sessionToken, nil
}

// Revoke marks a session token as revoked. Revoking an unknown token succeeds
// so sign-out stays idempotent.
func (r *sessionTokenRepository) Revoke(ctx context.Context, token string) error {
	query := `
		UPDATE session_tokens
		SET revoked = TRUE
		WHERE token = $1
	`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}

	return nil
}
