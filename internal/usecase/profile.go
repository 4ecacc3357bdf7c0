package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/gateway"
)

// ProfileFetcher retrieves the profile document of a user.
type ProfileFetcher struct {
	getter gateway.Getter
	logger *logrus.Logger
}

// NewProfileFetcher creates a new ProfileFetcher instance.
func NewProfileFetcher(getter gateway.Getter, logger *logrus.Logger) *ProfileFetcher {
	return &ProfileFetcher{getter: getter, logger: logger}
}

// Fetch returns the user's profile. Any failure yields a nil profile and an
// error wrapping domain.ErrProfileUnavailable; callers must stop the run.
func (f *ProfileFetcher) Fetch(ctx context.Context, username string) (*domain.Profile, error) {
	endpoint := fmt.Sprintf("users/%s", url.PathEscape(username))

	page, err := f.getter.Get(ctx, endpoint, DefaultHeaders())
	if err != nil {
		return nil, f.unavailable(username, err)
	}
	if !page.OK() {
		return nil, f.unavailable(username, domain.NewStatusError(endpoint, page.Status))
	}
	profile, err := gateway.DecodeProfile(page.Body)
	if err != nil {
		return nil, f.unavailable(username, err)
	}
	return profile, nil
}

func (f *ProfileFetcher) unavailable(username string, cause error) error {
	f.logger.WithError(cause).WithField("username", username).Error("Error fetching profile")
	return fmt.Errorf("%w: %s: %w", domain.ErrProfileUnavailable, username, cause)
}
