package token

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int, secretHash string, expiresAt time.Time) (int, error)
	Get(ctx context.Context, tokenID int) (userID int, secretHash string, err error)
	Delete(ctx context.Context, tokenID int) error
}
