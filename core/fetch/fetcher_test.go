package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCookie(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		c, err := ParseCookie("  ")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Value With Equals", func(t *testing.T) {
		c, err := ParseCookie("session=abc.def==")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "session", c.Name)
		assert.Equal(t, "abc.def==", c.Value)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, raw := range []string{"novalue", "=value"} {
			_, err := ParseCookie(raw)
			assert.ErrorIs(t, err, ErrInvalidCookie, raw)
		}
	})
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hw/hw01/":
			c, err := r.Cookie("session")
			if err != nil || c.Value != "secret" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<h1>Homework 1</h1>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("Authenticated", func(t *testing.T) {
		cookie, err := ParseCookie("session=secret")
		require.NoError(t, err)

		res, err := New(cookie).Fetch(ctx, server.URL+"/hw/hw01/")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "<h1>Homework 1</h1>", res.HTML)
		assert.NotEmpty(t, res.RequestID)
	})

	t.Run("Missing Cookie", func(t *testing.T) {
		_, err := New(nil).Fetch(ctx, server.URL+"/hw/hw01/")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := New(nil).Fetch(ctx, server.URL+"/hw/hw99/")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("Network Error", func(t *testing.T) {
		_, err := New(nil).Fetch(ctx, "http://127.0.0.1:1/unreachable")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})
}
