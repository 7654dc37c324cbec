package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListRepos(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"hello","html_url":"https://github.com/octo/hello","stargazers_count":3,"watchers_count":3,"forks_count":1}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	repos, err := c.ListRepos(context.Background(), "octo")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "hello", repos[0].Name)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.Equal(t, 1, repos[0].ForksCount)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/users/octo/repos", gotReq.URL.Path)
	assert.Equal(t, "5", gotReq.URL.Query().Get("per_page"))
	assert.Equal(t, "created:asc", gotReq.URL.Query().Get("sort"))
	assert.Equal(t, "devconnector", gotReq.Header.Get("User-Agent"))
	assert.Equal(t, "application/vnd.github+json", gotReq.Header.Get("Accept"))
	assert.Equal(t, "token secret", gotReq.Header.Get("Authorization"))
}

func TestClient_ListReposWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repos, err := NewClient(srv.URL, "", time.Second).ListRepos(context.Background(), "octo")
	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.NotNil(t, repos)
}

func TestClient_ListReposFailures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		notFound bool
	}{
		{"not found", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) }, true},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusForbidden) }, true},
		{"bad body", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{`)) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, "", time.Second).ListRepos(context.Background(), "ghost")
			require.Error(t, err)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
		})
	}
}

func TestClient_ListReposTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL, "", time.Second).ListRepos(ctx, "slow")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
