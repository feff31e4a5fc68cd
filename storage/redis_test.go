package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when REDIS_TEST_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	store, err := NewRedisStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	key := "bracket-test:" + uuid.NewString()
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, key, []byte("blob")))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "blob", string(got))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not-a-url://")
	assert.Error(t, err)
}

func TestNewCloudflareR2Store_RequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Store(context.Background(), CloudflareR2StoreConfig{AccountID: "acc"})
	assert.Error(t, err)
}

func TestR2Store_ObjectKey(t *testing.T) {
	store, err := NewCloudflareR2Store(context.Background(), CloudflareR2StoreConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "brackets",
		Prefix:          "/state/",
	})
	require.NoError(t, err)
	assert.Equal(t, "state/tournamentState", store.objectKey("tournamentState"))

	store.prefix = ""
	assert.Equal(t, "tournamentState", store.objectKey("tournamentState"))
}
