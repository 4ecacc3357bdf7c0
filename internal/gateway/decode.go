package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

// ErrMissingField is returned when a required field is absent from a GitHub document.
var ErrMissingField = errors.New("missing required field")

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// DecodeProfile decodes a users/{username} document.
// Login, created_at and the three counters are required.
func DecodeProfile(body json.RawMessage) (*domain.Profile, error) {
	var u github.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	switch {
	case u.Login == nil || *u.Login == "":
		return nil, missing("login")
	case u.CreatedAt == nil:
		return nil, missing("created_at")
	case u.PublicRepos == nil:
		return nil, missing("public_repos")
	case u.Followers == nil:
		return nil, missing("followers")
	case u.Following == nil:
		return nil, missing("following")
	}
	return &domain.Profile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Bio:         u.GetBio(),
		Location:    u.GetLocation(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}, nil
}

// DecodeRepository decodes one element of a users/{username}/repos page.
// The owner falls back to defaultOwner when the document has none.
func DecodeRepository(item json.RawMessage, defaultOwner string) (domain.Repository, error) {
	var r github.Repository
	if err := json.Unmarshal(item, &r); err != nil {
		return domain.Repository{}, fmt.Errorf("failed to decode repository: %w", err)
	}
	switch {
	case r.Name == nil || *r.Name == "":
		return domain.Repository{}, missing("name")
	case r.StargazersCount == nil:
		return domain.Repository{}, missing("stargazers_count")
	case r.ForksCount == nil:
		return domain.Repository{}, missing("forks_count")
	}
	owner := r.GetOwner().GetLogin()
	if owner == "" {
		owner = defaultOwner
	}
	return domain.Repository{
		Name:        r.GetName(),
		Owner:       owner,
		Language:    strings.TrimSpace(r.GetLanguage()),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Description: r.GetDescription(),
	}, nil
}

// DecodeCommit turns one element of a repos/{owner}/{repo}/commits page into
// a contribution event. ok is false when the commit carries no author date.
func DecodeCommit(item json.RawMessage, repository string) (event domain.ContributionEvent, ok bool, err error) {
	var c github.RepositoryCommit
	if err := json.Unmarshal(item, &c); err != nil {
		return domain.ContributionEvent{}, false, fmt.Errorf("failed to decode commit: %w", err)
	}
	date := c.GetCommit().GetAuthor().GetDate()
	if date.IsZero() {
		return domain.ContributionEvent{}, false, nil
	}
	return domain.ContributionEvent{
		Timestamp:  date.Time,
		Repository: repository,
		Kind:       domain.EventKindCommit,
	}, true, nil
}
