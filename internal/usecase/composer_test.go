package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

func TestAccountAgeDays(t *testing.T) {
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	testCases := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{name: "four years spanning a leap year", now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), expected: 1461},
		{name: "partial day is floored", now: created.Add(47*time.Hour + 59*time.Minute), expected: 1},
		{name: "same instant", now: created, expected: 0},
		{name: "creation in the future", now: created.Add(-time.Hour), expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AccountAgeDays(created, tc.now))
		})
	}
}

func TestCompose(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &domain.Profile{
		Login:       "octocat",
		Bio:         "tentacles",
		PublicRepos: 2,
		Followers:   7,
		Following:   1,
		CreatedAt:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	repos := []domain.Repository{
		{Name: "a", Language: "Go", Stars: 3, Forks: 1, Description: "first"},
		{Name: "b", Language: "C", Stars: 1, Forks: 2},
	}

	report := Compose(profile, SummarizeRepositories(repos), false, TallyLanguages(repos), now)

	assert.Equal(t, domain.ProfileSummary{
		Username:       "octocat",
		Name:           "Not provided",
		Bio:            "tentacles",
		Location:       "Not provided",
		PublicRepos:    2,
		Followers:      7,
		Following:      1,
		JoinDate:       "2020-01-01",
		AccountAgeDays: 1461,
	}, report.ProfileSummary)
	assert.Equal(t, "2024-01-01 00:00:00", report.GeneratedAt)
	assert.False(t, report.RepositoryStats.Complete)
	assert.Equal(t, []domain.StarredRepository{
		{Name: "a", Stars: 3, Description: "first"},
		{Name: "b", Stars: 1, Description: "No description"},
	}, report.RepositoryStats.TopReposByStars)
	assert.Equal(t, "b", report.RepositoryStats.TopReposByForks[0].Name)
	assert.Equal(t, domain.LanguageRanking{{Language: "C", Count: 1}, {Language: "Go", Count: 1}}, report.TopLanguages)
}

func TestCompose_JSONShape(t *testing.T) {
	now := time.Date(2024, 6, 30, 13, 4, 5, 0, time.UTC)
	profile := &domain.Profile{Login: "ghost", CreatedAt: now.AddDate(-1, 0, 0)}
	tally := domain.LanguageTally{"Go": 1, "Rust": 4, "C": 2}

	report := Compose(profile, SummarizeRepositories(nil), true, tally, now)
	data, err := json.Marshal(report)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc, 4)
	for _, key := range []string{"profile_summary", "repository_stats", "top_languages", "generated_at"} {
		assert.Contains(t, doc, key)
	}
	assert.JSONEq(t, `"2024-06-30 13:04:05"`, string(doc["generated_at"]))
	assert.Equal(t, `{"Rust":4,"C":2,"Go":1}`, string(doc["top_languages"]))

	var stats map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["repository_stats"], &stats))
	assert.Equal(t, "[]", string(stats["top_repos_by_stars"]))
	assert.Equal(t, "[]", string(stats["top_repos_by_forks"]))
	assert.Equal(t, "0", string(stats["avg_stars_per_repo"]))

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.TopLanguages, decoded.TopLanguages)
}
