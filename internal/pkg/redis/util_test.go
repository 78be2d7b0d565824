package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	SetClient(client)
	return mr
}

func TestJSONRoundTripWithTTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, SetJSON(ctx, "k", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	found, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRenameMissingKey(t *testing.T) {
	setupMiniredis(t)
	ok, err := Rename(context.Background(), "missing", "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetHelpers(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SAddWithExpiration(ctx, "s", time.Minute, "a", "b"))
	require.NoError(t, SAdd(ctx, "s", "b", "c"))
	members, err := GetSet(ctx, "s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, members)
	assert.Greater(t, mr.TTL("s"), time.Duration(0))

	set, err := SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, set)
	set, err = SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, set)

	exists, err := Exists(ctx, "lock")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, DeleteKey(ctx, "lock", "s"))
	exists, _ = Exists(ctx, "lock")
	assert.False(t, exists)
}

func TestReleaseLockChecksOwner(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	locked, err := SetNX(ctx, "lock", "a", time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	released, err := ReleaseLock(ctx, "lock", "b")
	require.NoError(t, err)
	assert.False(t, released)
	assert.True(t, mr.Exists("lock"))

	released, err = ReleaseLock(ctx, "lock", "a")
	require.NoError(t, err)
	assert.True(t, released)
	assert.False(t, mr.Exists("lock"))

	released, err = ReleaseLock(ctx, "lock", "a")
	require.NoError(t, err)
	assert.False(t, released)
}
