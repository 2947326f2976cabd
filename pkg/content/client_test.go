package content_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/pkg/content"
)

func newUpstream(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octo", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"login": "octo", "name": "Octo Cat", "bio": "hi",
			"public_repos": 3, "followers": 7, "following": 1,
		})
	})
	mux.HandleFunc("GET /users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "6", r.URL.Query().Get("per_page"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"name": "folio", "html_url": "https://github.com/octo/folio", "stargazers_count": 5, "language": "Go"},
		})
	})
	mux.HandleFunc("GET /api/articles", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gamedev", r.URL.Query().Get("tag"))
		assert.Equal(t, "6", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 9, "title": "Shaders", "tag_list": []string{"glsl"}, "user": map[string]any{"name": "Octo"}},
			{"id": 10, "title": "Anonymous"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Fetches(t *testing.T) {
	var hits atomic.Int32
	srv := newUpstream(t, &hits)
	c := content.NewClient(content.WithBaseURLs(srv.URL, srv.URL), content.WithUser("octo"))
	ctx := context.Background()

	profile := c.Profile(ctx)
	assert.False(t, profile.Fallback)
	assert.Equal(t, "Octo Cat", profile.Data.Name)
	assert.Equal(t, 7, profile.Data.Followers)

	repos := c.Repositories(ctx)
	require.False(t, repos.Fallback, repos.Error)
	require.Len(t, repos.Data, 1)
	assert.Equal(t, "https://github.com/octo/folio", repos.Data[0].URL)

	articles := c.Articles(ctx)
	require.False(t, articles.Fallback, articles.Error)
	require.Len(t, articles.Data, 2)
	assert.Equal(t, "Octo", articles.Data[0].Author)
	assert.Equal(t, "Unknown", articles.Data[1].Author)
	assert.Equal(t, []string{}, articles.Data[1].Tags)
}

func TestClient_ProfileIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := newUpstream(t, &hits)
	c := content.NewClient(content.WithBaseURLs(srv.URL, srv.URL), content.WithUser("octo"))

	c.Profile(context.Background())
	c.Profile(context.Background())
	assert.Equal(t, int32(1), hits.Load())

	uncached := content.NewClient(content.WithBaseURLs(srv.URL, srv.URL), content.WithUser("octo"), content.WithProfileTTL(0))
	uncached.Profile(context.Background())
	uncached.Profile(context.Background())
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := content.NewClient(content.WithBaseURLs(srv.URL, srv.URL))
	ctx := context.Background()

	profile := c.Profile(ctx)
	assert.True(t, profile.Fallback)
	assert.Contains(t, profile.Error, "403")
	assert.Equal(t, "Var1d", profile.Data.Login)

	articles := c.Articles(ctx)
	assert.True(t, articles.Fallback)
	assert.Len(t, articles.Data, 3)

	repos := c.Repositories(ctx)
	assert.True(t, repos.Fallback)
	assert.Empty(t, repos.Data)
}

func TestClient_BadPayloadFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := content.NewClient(content.WithBaseURLs(srv.URL, srv.URL))
	res := c.Articles(context.Background())
	assert.True(t, res.Fallback)
	assert.Contains(t, res.Error, "decode")
}
