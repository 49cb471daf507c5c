package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type TokenRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTokenRepository(pool *pgxpool.Pool, log *slog.Logger) *TokenRepository {
	return &TokenRepository{
		pool: pool,
		log:  log.With("component", "token_repository"),
	}
}

func (r *TokenRepository) Create(ctx context.Context, userID int, secretHash string, expiresAt time.Time) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO api_tokens (user_id, secret_hash, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, secretHash, expiresAt).Scan(&id)
	if err != nil {
		r.log.Error("failed to create token", "user_id", userID, "error", err)
		return 0, fmt.Errorf("create token: %w", err)
	}
	return id, nil
}

func (r *TokenRepository) Get(ctx context.Context, tokenID int) (int, string, error) {
	var userID int
	var secretHash string
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, secret_hash FROM api_tokens
		 WHERE id = $1 AND expires_at > NOW()`,
		tokenID).Scan(&userID, &secretHash)
	if err != nil {
		return 0, "", fmt.Errorf("get token: %w", err)
	}
	return userID, secretHash, nil
}

func (r *TokenRepository) Delete(ctx context.Context, tokenID int) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM api_tokens WHERE id = $1", tokenID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
