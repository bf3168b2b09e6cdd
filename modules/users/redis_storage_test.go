package users_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqcheck/modules/users"
)

func TestRedisStorage(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL is not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	storage := users.NewRedisStorage(client)
	email := uuid.NewString() + "@example.com"
	t.Cleanup(func() { client.Del(context.Background(), "users:email:"+email) })

	_, err = storage.GetUserByEmail(ctx, email)
	assert.ErrorIs(t, err, users.ErrUserNotFound)

	u := &users.User{ID: uuid.New(), Email: email, PasswordHash: []byte("hash")}
	require.NoError(t, storage.CreateUser(ctx, u))
	assert.ErrorIs(t, storage.CreateUser(ctx, u), users.ErrEmailAlreadyExists)

	got, err := storage.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
}
