package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	Name string `json:"name"`
}

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = client.Close()
		SetClient(nil)
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()
	key := UserKey(uuid.New())

	calls := 0
	fetch := func(dst *cachedUser) func() error {
		return func() error {
			calls++
			dst.Name = "Ann"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, key, &first, UserTTL, fetch(&first)))
	assert.Equal(t, "Ann", first.Name)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, UserTTL, mr.TTL(key))

	var second cachedUser
	require.NoError(t, Aside(ctx, key, &second, UserTTL, fetch(&second)))
	assert.Equal(t, "Ann", second.Name)
	assert.Equal(t, 1, calls, "second read must be served from Redis")
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := useMiniredis(t)
	key := GithubReposKey("Octocat")

	var dst []string
	err := Aside(context.Background(), key, &dst, GithubReposTTL, func() error {
		return errors.New("upstream down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists(key))
}

func TestAside_WithoutRedisAlwaysFetches(t *testing.T) {
	SetClient(nil)
	calls := 0
	for i := 0; i < 2; i++ {
		var dst cachedUser
		require.NoError(t, Aside(context.Background(), "user:x", &dst, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidateUser(t *testing.T) {
	mr := useMiniredis(t)
	id := uuid.New()
	require.NoError(t, SetJSON(context.Background(), UserKey(id), cachedUser{Name: "Ann"}, UserTTL))
	require.True(t, mr.Exists(UserKey(id)))

	InvalidateUser(context.Background(), id)
	assert.False(t, mr.Exists(UserKey(id)))
}

func TestGithubReposKeyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, GithubReposKey("octocat"), GithubReposKey("OctoCat"))
	assert.Equal(t, "github:repos:octocat", GithubReposKey("OctoCat"))
}
