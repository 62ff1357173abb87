// Package sessiontest provides an in-memory session storage for handler tests.
package sessiontest

import (
	"bookStore/internal/session"
	"context"
	"sync"
)

type Memory struct {
	mu     sync.Mutex
	users  map[int64]session.Identity
	tokens map[int64]string

	// Err, when set, fails every FindByToken.
	Err error

	// AfterFind, when set, runs after every FindByToken outside the lock.
	AfterFind func(token string)
}

func NewMemory(users ...session.Identity) *Memory {
	m := &Memory{users: map[int64]session.Identity{}, tokens: map[int64]string{}}
	for _, u := range users {
		m.users[u.UserID] = u
	}
	return m
}

func (m *Memory) SetToken(_ context.Context, userID int64, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous := m.tokens[userID]
	m.tokens[userID] = token
	return previous, nil
}

func (m *Memory) ClearToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tokens {
		if t == token {
			delete(m.tokens, id)
		}
	}
	return nil
}

func (m *Memory) FindByToken(_ context.Context, token string) (*session.Identity, error) {
	identity, err := m.find(token)
	if m.AfterFind != nil {
		m.AfterFind(token)
	}
	return identity, err
}

func (m *Memory) find(token string) (*session.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for id, t := range m.tokens {
		if t == token {
			identity := m.users[id]
			return &identity, nil
		}
	}
	return nil, nil
}

// Login is a shortcut that issues a token for userID through store.
func Login(store *session.Store, userID int64) string {
	token, err := store.Create(context.Background(), userID)
	if err != nil {
		panic(err)
	}
	return token
}
