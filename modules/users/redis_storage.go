package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "users:email:"

// RedisStorage stores each user as a JSON document under prefix+email.
type RedisStorage struct {
	db     redis.UniversalClient
	prefix string
}

func NewRedisStorage(client redis.UniversalClient) *RedisStorage {
	return &RedisStorage{db: client, prefix: defaultKeyPrefix}
}

// CreateUser relies on SETNX, so two concurrent registrations of the same
// email cannot both succeed.
func (s *RedisStorage) CreateUser(ctx context.Context, u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	ok, err := s.db.SetNX(ctx, s.prefix+u.Email, data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	if !ok {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *RedisStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	data, err := s.db.Get(ctx, s.prefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &u, nil
}
