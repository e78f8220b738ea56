package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T, ttl time.Duration) (*Repository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRepository(client, ttl), mr
}

func TestRepository_GetSelectedBusiness_NotFound(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)

	_, err := repo.GetSelectedBusiness(context.Background(), "+79991234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_SetAndGetSelectedBusiness(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)
	ctx := context.Background()

	err := repo.SetSelectedBusiness(ctx, "+79991234567", 42)
	require.NoError(t, err)

	businessID, err := repo.GetSelectedBusiness(ctx, "+79991234567")
	require.NoError(t, err)
	assert.Equal(t, int64(42), businessID)
}

func TestRepository_SetSelectedBusiness_Overwrite(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SetSelectedBusiness(ctx, "+79991234567", 1))
	require.NoError(t, repo.SetSelectedBusiness(ctx, "+79991234567", 2))

	businessID, err := repo.GetSelectedBusiness(ctx, "+79991234567")
	require.NoError(t, err)
	assert.Equal(t, int64(2), businessID)
}

func TestRepository_SessionExpires(t *testing.T) {
	repo, mr := setupRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.SetSelectedBusiness(ctx, "+79991234567", 42))

	mr.FastForward(2 * time.Minute)

	_, err := repo.GetSelectedBusiness(ctx, "+79991234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_ClearSelectedBusiness(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SetSelectedBusiness(ctx, "+79991234567", 42))
	require.NoError(t, repo.ClearSelectedBusiness(ctx, "+79991234567"))

	_, err := repo.GetSelectedBusiness(ctx, "+79991234567")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_SessionsIsolatedByPhone(t *testing.T) {
	repo, _ := setupRepo(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SetSelectedBusiness(ctx, "+79991111111", 1))
	require.NoError(t, repo.SetSelectedBusiness(ctx, "+79992222222", 2))

	first, err := repo.GetSelectedBusiness(ctx, "+79991111111")
	require.NoError(t, err)
	second, err := repo.GetSelectedBusiness(ctx, "+79992222222")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}
