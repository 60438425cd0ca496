package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/sitecrawl/cmd/sitecrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSite serves a small site:
//
//	/         links to /a, an external page and an anchor without href
//	/a        links to itself twice and to /missing
//	/missing  404
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Home</title></head><body>
<a href="/a">A</a>
<a href="https://other.com/c">C</a>
<a name="top">Top</a>
</body></html>`))
	})
	mux.HandleFunc("/a", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Page A</title></head><body>
<img src="/logo.png"><img src="">
<script>console.log("a")</script>
<a href="/a">Self</a>
<a href="` + srv.URL + `/a">Self again</a>
<a href="/missing">Missing</a>
</body></html>`))
	})
	return srv
}

// newMain returns a Main that is isolated from the user's environment.
func newMain(t *testing.T, env map[string]string) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ConfigPath = ""
	m.Stdin = &bytes.Buffer{}
	m.Getenv = func(key string) string { return env[key] }
	return m
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"crawl", "runs", "pages", "delete"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newMain(t, nil)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	t.Run("config file supplies flag defaults", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		config := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte("browser: http\nno_wait: true\nmax-pages: 1\nprint-links: true\n"), 0o600))

		m := newMain(t, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--config", config, srv.URL + "/"}, stdout, stderr)
		require.NoError(t, err, stderr.String())

		assert.Contains(t, stdout.String(), "Page -> "+srv.URL+"/a\n")
		assert.Contains(t, stdout.String(), "    Links:\n        /a\n")
		assert.NotContains(t, stdout.String(), "Page -> "+srv.URL+"/missing")
		assert.Contains(t, stdout.String(), "Finished. Visited 2 pages.\n")
	})

	t.Run("command line overrides the config file", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		config := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte("browser: http\nno-wait: true\nmax-pages: 1\n"), 0o600))

		m := newMain(t, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--config", config, "crawl", "--max-pages", "0", srv.URL + "/"}, stdout, stderr)
		require.NoError(t, err, stderr.String())

		assert.Contains(t, stdout.String(), "Page -> "+srv.URL+"/missing\n")
		assert.Contains(t, stdout.String(), "Finished. Visited 4 pages.\n")
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		t.Parallel()

		config := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte("max-pages: [\n"), 0o600))

		m := newMain(t, nil)
		err := m.Run(context.Background(), []string{"--config", config, "https://example.com/"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestMain_Run_OpensDatabaseOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t)
	m := newMain(t, nil)
	m.DBPath = filepath.Join(t.TempDir(), "missing-dir", "nested", "test.db")

	err := m.Run(context.Background(), []string{"--browser", "http", "--no-wait", srv.URL + "/"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	_, statErr := os.Stat(m.DBPath)
	assert.True(t, os.IsNotExist(statErr), "crawl without --record should not create a database")
}
