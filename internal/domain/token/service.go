package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

const tokenTTL = 90 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type Servicer interface {
	Issue(ctx context.Context, userID int) (string, error)
	Validate(ctx context.Context, token string) (int, error)
	Revoke(ctx context.Context, token string) error
}

// Service issues and validates bearer API tokens. A token is
// "<id>.<secret>"; only a bcrypt hash of the secret is stored, so a leaked
// database does not leak usable tokens.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) Issue(ctx context.Context, userID int) (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}

	id, err := s.repo.Create(ctx, userID, string(hash), time.Now().Add(tokenTTL))
	if err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}

	return fmt.Sprintf("%d.%s", id, secret), nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	id, secret, err := split(token)
	if err != nil {
		return 0, err
	}

	userID, secretHash, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Debug("token lookup failed", "token_id", id, "error", err)
		return 0, ErrInvalidToken
	}

	if err := bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)); err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	id, _, err := split(token)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func split(token string) (int, string, error) {
	idPart, secret, found := strings.Cut(token, ".")
	if !found || secret == "" {
		return 0, "", ErrInvalidToken
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return 0, "", ErrInvalidToken
	}
	return id, secret, nil
}
