package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

type poolStats struct {
	Total   int         `json:"total"`
	ByLevel map[int]int `json:"by_level"`
}

func TestNewCacheRepo_NilClient(t *testing.T) {
	_, err := NewCacheRepo(nil)

	assert.Error(t, err)
}

func TestCacheRepo_GetJSON_MissingKey(t *testing.T) {
	repo, err := NewCacheRepo(newTestClient(t))
	require.NoError(t, err)

	var dest poolStats
	err = repo.GetJSON("questions:stats", &dest)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_SetGetDelete(t *testing.T) {
	repo, err := NewCacheRepo(newTestClient(t))
	require.NoError(t, err)
	stats := poolStats{Total: 3, ByLevel: map[int]int{0: 2, 14: 1}}

	require.NoError(t, repo.SetJSON("questions:stats", stats, time.Minute))

	var got poolStats
	require.NoError(t, repo.GetJSON("questions:stats", &got))
	assert.Equal(t, stats, got)

	require.NoError(t, repo.Delete("questions:stats"))
	assert.ErrorIs(t, repo.GetJSON("questions:stats", &got), apperrors.ErrNotFound)
}

func TestCacheRepo_SetJSON_Expiration(t *testing.T) {
	client := newTestClient(t)
	repo, err := NewCacheRepo(client)
	require.NoError(t, err)

	require.NoError(t, repo.SetJSON("questions:stats", poolStats{Total: 1}, 100*time.Millisecond))
	ttl, err := client.PTTL(context.Background(), "questions:stats").Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0, "ttl=%v", ttl)

	time.Sleep(300 * time.Millisecond)

	var got poolStats
	assert.ErrorIs(t, repo.GetJSON("questions:stats", &got), apperrors.ErrNotFound)
}

func TestCacheRepo_GetJSON_CorruptedValue(t *testing.T) {
	client := newTestClient(t)
	repo, err := NewCacheRepo(client)
	require.NoError(t, err)
	require.NoError(t, client.Set(context.Background(), "questions:stats", "not json", time.Minute).Err())

	var got poolStats
	err = repo.GetJSON("questions:stats", &got)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
