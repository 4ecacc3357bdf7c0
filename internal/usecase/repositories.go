package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/gateway"
)

// RepositoryPageSize is the per_page ceiling of the GitHub REST API.
const RepositoryPageSize = 100

// RepositoryCollection is the list of repositories owned by a user.
// An empty, complete collection means the user owns no repositories.
type RepositoryCollection struct {
	Repositories []domain.Repository
	Complete     bool
	Err          error
}

// RepositoryCollector retrieves every repository of a user.
type RepositoryCollector struct {
	paginator *Paginator
	logger    *logrus.Logger
}

// NewRepositoryCollector creates a new RepositoryCollector instance.
func NewRepositoryCollector(paginator *Paginator, logger *logrus.Logger) *RepositoryCollector {
	return &RepositoryCollector{paginator: paginator, logger: logger}
}

// Collect fetches all repository pages. Entries missing required fields
// are dropped and mark the collection incomplete.
func (c *RepositoryCollector) Collect(ctx context.Context, username string) RepositoryCollection {
	endpoint := fmt.Sprintf("users/%s/repos?per_page=%d", url.PathEscape(username), RepositoryPageSize)
	pages := c.paginator.FetchAll(ctx, endpoint, DefaultHeaders())

	collection := RepositoryCollection{
		Repositories: make([]domain.Repository, 0, len(pages.Items)),
		Complete:     pages.Complete,
		Err:          pages.Err,
	}
	var decodeErrs []error
	for i, item := range pages.Items {
		repo, err := gateway.DecodeRepository(item, username)
		if err != nil {
			decodeErrs = append(decodeErrs, fmt.Errorf("repository #%d: %w", i, err))
			continue
		}
		collection.Repositories = append(collection.Repositories, repo)
	}
	if len(decodeErrs) > 0 {
		c.logger.WithField("dropped", len(decodeErrs)).Warn("Dropped repositories that failed validation")
		collection.Complete = false
		collection.Err = errors.Join(append([]error{collection.Err}, decodeErrs...)...)
	}
	return collection
}
