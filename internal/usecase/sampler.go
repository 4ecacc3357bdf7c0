package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/gateway"
)

// DefaultSampleSize is how many of the most starred repositories are
// scanned for commits. It bounds the number of API calls per run.
const DefaultSampleSize = 5

// CommitPageSize is the per_page value used for commit listings.
const CommitPageSize = 100

// SampledRepository records what the sampler got out of one repository.
type SampledRepository struct {
	Name     string
	Commits  int
	Complete bool
	Err      error
}

// ContributionSample is an approximation of a user's activity built from
// their authored commits on a handful of repositories. It is never a
// complete activity record.
type ContributionSample struct {
	Events       []domain.ContributionEvent
	Repositories []SampledRepository
	Complete     bool
}

// Approximate is always true; it documents the nature of the data for consumers.
func (s ContributionSample) Approximate() bool {
	return true
}

// ContributionSampler derives contribution events from commit listings.
type ContributionSampler struct {
	paginator  *Paginator
	sampleSize int
	logger     *logrus.Logger
}

// NewContributionSampler creates a new ContributionSampler instance.
// A non-positive sampleSize falls back to DefaultSampleSize.
func NewContributionSampler(paginator *Paginator, sampleSize int, logger *logrus.Logger) *ContributionSampler {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &ContributionSampler{paginator: paginator, sampleSize: sampleSize, logger: logger}
}

// Sample fetches commits authored by username on the most starred repositories,
// one repository after another in ranked order. A failing repository is
// skipped (or truncated) and the rest are still sampled.
func (s *ContributionSampler) Sample(ctx context.Context, username string, repos []domain.Repository) ContributionSample {
	selected := TopN(repos, s.sampleSize, byStars)
	sample := ContributionSample{
		Events:       []domain.ContributionEvent{},
		Repositories: make([]SampledRepository, 0, len(selected)),
		Complete:     true,
	}

	for i, repo := range selected {
		owner := repo.Owner
		if owner == "" {
			owner = username
		}
		s.logger.Debugf("  Sampling commits from %s/%s (%d/%d)...", owner, repo.Name, i+1, len(selected))
		endpoint := fmt.Sprintf("repos/%s/%s/commits?author=%s&per_page=%d",
			url.PathEscape(owner), url.PathEscape(repo.Name), url.QueryEscape(username), CommitPageSize)
		pages := s.paginator.FetchAll(ctx, endpoint, DefaultHeaders())

		outcome := SampledRepository{Name: repo.Name, Complete: pages.Complete, Err: pages.Err}
		for _, item := range pages.Items {
			event, ok, err := gateway.DecodeCommit(item, repo.Name)
			if err != nil {
				s.logger.WithError(err).WithField("repo", repo.Name).Debug("Skipping undecodable commit")
				continue
			}
			if !ok {
				continue
			}
			sample.Events = append(sample.Events, event)
			outcome.Commits++
		}
		if !outcome.Complete {
			sample.Complete = false
		}
		sample.Repositories = append(sample.Repositories, outcome)
	}
	return sample
}
