package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

func commitsURL(repo string) string {
	return fmt.Sprintf("repos/octocat/%s/commits?author=octocat&per_page=100", repo)
}

func commitBody(dates ...string) string {
	body := "["
	for i, date := range dates {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"sha":"%d","commit":{"author":{"date":%q}}}`, i, date)
	}
	return body + "]"
}

func TestContributionSampler_Sample(t *testing.T) {
	repos := []domain.Repository{
		repo("low", "Go", 1, 0),
		repo("top", "Go", 100, 0),
		repo("mid-a", "Go", 10, 0),
		repo("mid-b", "Go", 10, 0),
		repo("second", "Go", 50, 0),
		repo("broken", "Go", 20, 0),
		repo("ignored", "Go", 0, 0),
	}

	getter := new(mockGetter)
	getter.onGet(commitsURL("top"), okPage(commitBody("2023-01-01T00:00:00Z", "2023-02-01T00:00:00Z"), "top-p2"), nil)
	getter.onGet("top-p2", okPage(commitBody("2023-02-03T00:00:00Z"), ""), nil)
	getter.onGet(commitsURL("second"), okPage(`[{"sha":"x","commit":{}}]`, ""), nil)
	getter.onGet(commitsURL("broken"), statusPage(http.StatusConflict), nil)
	getter.onGet(commitsURL("mid-a"), okPage(commitBody("2023-03-01T00:00:00Z"), "mid-a-p2"), nil)
	getter.onGet("mid-a-p2", nil, errors.New("timeout"))
	getter.onGet(commitsURL("mid-b"), okPage(commitBody("2023-04-01T00:00:00Z"), ""), nil)

	sampler := NewContributionSampler(NewPaginator(getter, discardLogger()), DefaultSampleSize, discardLogger())
	sample := sampler.Sample(context.Background(), "octocat", repos)

	assert.False(t, sample.Complete)
	assert.True(t, sample.Approximate())
	require.Len(t, sample.Repositories, 5)
	assert.Equal(t, SampledRepository{Name: "top", Commits: 3, Complete: true}, sample.Repositories[0])
	assert.Equal(t, SampledRepository{Name: "second", Commits: 0, Complete: true}, sample.Repositories[1])
	assert.Equal(t, "broken", sample.Repositories[2].Name)
	assert.False(t, sample.Repositories[2].Complete)
	assert.Error(t, sample.Repositories[2].Err)
	assert.Equal(t, "mid-a", sample.Repositories[3].Name)
	assert.Equal(t, 1, sample.Repositories[3].Commits)
	assert.False(t, sample.Repositories[3].Complete)
	assert.Equal(t, "mid-b", sample.Repositories[4].Name)

	require.Len(t, sample.Events, 5)
	for _, event := range sample.Events {
		assert.Equal(t, domain.EventKindCommit, event.Kind)
	}
	assert.Equal(t, "top", sample.Events[0].Repository)
	assert.Equal(t, "mid-b", sample.Events[4].Repository)

	getter.AssertExpectations(t)
	getter.AssertNotCalled(t, "Get", mock.Anything, commitsURL("low"), mock.Anything)
	getter.AssertNotCalled(t, "Get", mock.Anything, commitsURL("ignored"), mock.Anything)
}

func TestContributionSampler_SampleSizeOverride(t *testing.T) {
	repos := []domain.Repository{repo("a", "", 1, 0), repo("b", "", 2, 0)}

	getter := new(mockGetter)
	getter.onGet(commitsURL("b"), okPage(`[]`, ""), nil)

	sampler := NewContributionSampler(NewPaginator(getter, discardLogger()), 1, discardLogger())
	sample := sampler.Sample(context.Background(), "octocat", repos)

	assert.True(t, sample.Complete)
	assert.Empty(t, sample.Events)
	require.Len(t, sample.Repositories, 1)
	assert.Equal(t, "b", sample.Repositories[0].Name)
	getter.AssertExpectations(t)
}

func TestContributionSampler_NoRepositories(t *testing.T) {
	getter := new(mockGetter)
	sampler := NewContributionSampler(NewPaginator(getter, discardLogger()), 0, discardLogger())

	sample := sampler.Sample(context.Background(), "octocat", nil)

	assert.True(t, sample.Complete)
	assert.Empty(t, sample.Events)
	assert.Empty(t, sample.Repositories)
	getter.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}
