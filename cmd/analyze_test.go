package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-profile-report/internal/config"
	"github.com/naka-gawa/github-profile-report/internal/domain"
)

func newFakeGitHub(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","public_repos":2,"followers":3,"following":4,"created_at":"2020-01-01T00:00:00Z"}`)
	})
	mux.HandleFunc("/api/v3/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{"name":"hello","language":"Go","stargazers_count":2,"forks_count":1,"description":"hi"},{"name":"empty","stargazers_count":0,"forks_count":0}]`)
	})
	mux.HandleFunc("/api/v3/repos/octocat/hello/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "octocat", r.URL.Query().Get("author"))
		fmt.Fprint(w, `[{"sha":"1","commit":{"author":{"date":"2023-05-01T00:00:00Z"}}}]`)
	})
	mux.HandleFunc("/api/v3/repos/octocat/empty/commits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message":"Git Repository is empty."}`)
	})
	return httptest.NewServer(mux)
}

func TestRunAnalyze_WritesArtifacts(t *testing.T) {
	server := newFakeGitHub(t)
	defer server.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		Username:       "octocat",
		APIURL:         server.URL + "/",
		OutputDir:      dir,
		SampleSize:     5,
		RequestTimeout: 5 * time.Second,
	}
	var out bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), cfg, newLogger(false), &out))

	text := out.String()
	assert.Contains(t, text, "Name: The Octocat")
	assert.Contains(t, text, "1. hello - 2 stars")
	assert.Contains(t, text, "Some data could not be fetched")
	assert.Contains(t, text, "Analysis complete!")
	for _, name := range []string{"octocat_report.json", "octocat_languages.html", "octocat_activity.html"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	data, err := os.ReadFile(filepath.Join(dir, "octocat_report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"top_languages": {`)
}

func TestRunAnalyze_UnknownUser(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	server := newFakeGitHub(t)
	defer server.Close()

	cfg := &config.Config{Username: "ghost", APIURL: server.URL + "/", SampleSize: 5}
	var out bytes.Buffer
	err := runAnalyze(context.Background(), cfg, newLogger(false), &out)

	assert.ErrorIs(t, err, domain.ErrProfileUnavailable)
	assert.True(t, domain.IsNotFound(err))
	assert.NotContains(t, out.String(), "Profile Summary")
	assert.Equal(t, `GitHub user "ghost" was not found.`, diagnose("ghost", err))
}

func TestDiagnose(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "missing user",
			err:    fmt.Errorf("%w: ghost: %w", domain.ErrProfileUnavailable, domain.NewStatusError("users/ghost", http.StatusNotFound)),
			expect: `GitHub user "ghost" was not found.`,
		},
		{
			name:   "rate limited",
			err:    fmt.Errorf("%w: ghost: %w", domain.ErrProfileUnavailable, domain.NewStatusError("users/ghost", http.StatusForbidden)),
			expect: "Failed to fetch profile data. Check your network connection or your API rate limits.",
		},
		{
			name:   "not a profile failure",
			err:    errors.New("failed to emit artifacts"),
			expect: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, diagnose("ghost", tc.err))
		})
	}
}
