package users

import (
	"context"
	"sync"
)

// MemoryStorage keeps users in process memory.
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{users: make(map[string]User)}
}

func (s *MemoryStorage) CreateUser(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return ErrEmailAlreadyExists
	}
	s.users[u.Email] = *u
	return nil
}

func (s *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
