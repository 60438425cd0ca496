package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/sitecrawl"
	schttp "github.com/fwojciec/sitecrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
<a href="/a">A</a>
<A HREF="https://example.com/b?x=1&amp;y=2">B</A>
<a name="top">no href</a>
<a href="">empty</a>
<link href="/style.css">
</body></html>`))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p>new</p>`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/latin1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		_, _ = w.Write([]byte(`<p>signed in</p>`))
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("<p>hello " + c.Value + "</p>"))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.UserAgent()))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSession_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("loads the page and its anchors", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession()
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Navigate(ctx, srv.URL+"/"))

		hrefs, err := s.Hrefs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "https://example.com/b?x=1&y=2", "", ""}, hrefs)

		html, err := s.HTML(ctx)
		require.NoError(t, err)
		assert.Contains(t, html, `<a href="/a">A</a>`)

		lines, err := s.LogLines(ctx)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("reports the URL after redirects", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession()
		ctx := context.Background()

		require.NoError(t, s.Navigate(ctx, srv.URL+"/old"))

		current, err := s.CurrentURL(ctx)
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/new", current)
	})

	t.Run("logs error statuses instead of failing", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession()
		ctx := context.Background()

		require.NoError(t, s.Navigate(ctx, srv.URL+"/missing"))

		lines, err := s.LogLines(ctx)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "error", lines[0].Level)
		assert.Equal(t, "network", lines[0].Source)
		assert.Contains(t, lines[0].Message, "status of 404 (Not Found)")

		require.NoError(t, s.Navigate(ctx, srv.URL+"/new"))
		lines, err = s.LogLines(ctx)
		require.NoError(t, err)
		assert.Empty(t, lines, "log lines belong to the last navigation")
	})

	t.Run("decodes the declared charset", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession()
		ctx := context.Background()

		require.NoError(t, s.Navigate(ctx, srv.URL+"/latin1"))

		html, err := s.HTML(ctx)
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("keeps cookies between navigations", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession()
		ctx := context.Background()

		require.NoError(t, s.Navigate(ctx, srv.URL+"/login"))
		require.NoError(t, s.Navigate(ctx, srv.URL+"/me"))

		html, err := s.HTML(ctx)
		require.NoError(t, err)
		assert.Equal(t, "<p>hello abc</p>", html)
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession(schttp.WithUserAgent("sitecrawl-test"))
		ctx := context.Background()

		require.NoError(t, s.Navigate(ctx, srv.URL+"/ua"))

		html, err := s.HTML(ctx)
		require.NoError(t, err)
		assert.Equal(t, "sitecrawl-test", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession(schttp.WithTimeout(10 * time.Millisecond))

		err := s.Navigate(context.Background(), srv.URL+"/slow")

		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		s := schttp.NewSession()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Navigate(ctx, srv.URL+"/slow")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns transport errors", func(t *testing.T) {
		t.Parallel()

		s := schttp.NewSession()

		err := s.Navigate(context.Background(), "http://127.0.0.1:1/")

		require.Error(t, err)
	})
}

func TestAuthenticator_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("returns a session on the start page", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		var ready bool
		a := schttp.NewAuthenticator(func(context.Context) error {
			ready = true
			return nil
		})

		s, err := a.Authenticate(context.Background(), srv.URL+"/old")

		require.NoError(t, err)
		assert.True(t, ready)
		current, err := s.CurrentURL(context.Background())
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/new", current)
	})

	t.Run("wraps navigation errors", func(t *testing.T) {
		t.Parallel()

		a := schttp.NewAuthenticator(nil)

		_, err := a.Authenticate(context.Background(), "http://127.0.0.1:1/")

		require.Error(t, err)
		assert.Equal(t, sitecrawl.ENAVIGATION, sitecrawl.ErrorCode(err))
	})
}
