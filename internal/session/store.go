package session

import (
	"bookStore/internal/apperror"
	"bookStore/package/logger"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 64

type Storage interface {
	// SetToken stores token for the user and returns the token it replaced, if any.
	SetToken(ctx context.Context, userID int64, token string) (string, error)
	ClearToken(ctx context.Context, token string) error
	// FindByToken returns nil without error when no user holds the token.
	FindByToken(ctx context.Context, token string) (*Identity, error)
}

type Cache interface {
	Get(ctx context.Context, token string) (*Identity, error)
	Set(ctx context.Context, token string, identity *Identity) error
	Delete(ctx context.Context, token string) error
}

// Store keeps one active token per user. A new login overwrites the old token.
type Store struct {
	storage Storage
	cache   Cache
}

func NewStore(storage Storage, cache Cache) *Store {
	if cache == nil {
		cache = noCache{}
	}
	return &Store{storage: storage, cache: cache}
}

func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	previous, err := s.storage.SetToken(ctx, userID, token)
	if err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}
	if previous != "" {
		s.evict(ctx, previous)
	}
	return token, nil
}

// Resolve returns nil for an unknown or empty token. Only storage faults are errors.
func (s *Store) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}

	identity, err := s.cache.Get(ctx, token)
	if err != nil {
		logger.Log.WithError(err).Warn("Session cache lookup failed")
	}
	if identity != nil {
		return identity, nil
	}

	identity, err = s.storage.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if identity == nil {
		return nil, nil
	}
	if _, disabled := s.cache.(noCache); disabled {
		return identity, nil
	}
	if err = s.cache.Set(ctx, token, identity); err != nil {
		logger.Log.WithError(err).Warn("Session cache store failed")
		return identity, nil
	}

	// An Invalidate that ran after the lookup has already evicted; confirm the
	// token is still held so a cleared token never stays cached.
	current, err := s.storage.FindByToken(ctx, token)
	if err != nil || current == nil {
		s.evict(ctx, token)
	}
	if err != nil {
		return nil, fmt.Errorf("confirm session: %w", err)
	}
	return current, nil
}

// Require is Resolve for endpoints that refuse anonymous callers.
func (s *Store) Require(ctx context.Context, token string) (*Identity, error) {
	identity, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, apperror.ErrUnauthorized
	}
	return identity, nil
}

func (s *Store) Invalidate(ctx context.Context, token string) error {
	if err := s.storage.ClearToken(ctx, token); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	s.evict(ctx, token)
	return nil
}

func (s *Store) evict(ctx context.Context, token string) {
	if err := s.cache.Delete(ctx, token); err != nil {
		logger.Log.WithError(err).Warn("Session cache eviction failed")
	}
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*Identity, error) {
	return nil, nil
}

func (noCache) Set(context.Context, string, *Identity) error {
	return nil
}

func (noCache) Delete(context.Context, string) error {
	return nil
}
