package usecase

import (
	"time"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

const (
	notProvided    = "Not provided"
	noDescription  = "No description"
	joinDateLayout = "2006-01-02"
)

// AccountAgeDays is the number of whole days between createdAt and now.
// A creation time in the future counts as zero days.
func AccountAgeDays(createdAt, now time.Time) int {
	age := now.Sub(createdAt)
	if age < 0 {
		return 0
	}
	return int(age / (24 * time.Hour))
}

// Compose assembles the report. The ranking in top_languages is capped at
// TopLanguageCount, independently of the chart's slice limit.
func Compose(profile *domain.Profile, repoStats domain.RepositoryStats, reposComplete bool, tally domain.LanguageTally, now time.Time) domain.Report {
	return domain.Report{
		ProfileSummary:  summarizeProfile(profile, now),
		RepositoryStats: repositorySection(repoStats, reposComplete),
		TopLanguages:    TopLanguages(tally, TopLanguageCount),
		GeneratedAt:     now.Format(domain.GeneratedAtLayout),
	}
}

func summarizeProfile(profile *domain.Profile, now time.Time) domain.ProfileSummary {
	return domain.ProfileSummary{
		Username:       profile.Login,
		Name:           orDefault(profile.Name, notProvided),
		Bio:            orDefault(profile.Bio, notProvided),
		Location:       orDefault(profile.Location, notProvided),
		PublicRepos:    profile.PublicRepos,
		Followers:      profile.Followers,
		Following:      profile.Following,
		JoinDate:       profile.CreatedAt.Format(joinDateLayout),
		AccountAgeDays: AccountAgeDays(profile.CreatedAt, now),
	}
}

func repositorySection(s domain.RepositoryStats, complete bool) domain.RepositorySection {
	section := domain.RepositorySection{
		TotalRepos:      s.Total,
		TotalStars:      s.TotalStars,
		TotalForks:      s.TotalForks,
		AvgStarsPerRepo: s.AvgStarsPerRepo,
		TopReposByStars: make([]domain.StarredRepository, 0, len(s.TopByStars)),
		TopReposByForks: make([]domain.ForkedRepository, 0, len(s.TopByForks)),
		Complete:        complete,
	}
	for _, r := range s.TopByStars {
		section.TopReposByStars = append(section.TopReposByStars, domain.StarredRepository{
			Name:        r.Name,
			Stars:       r.Stars,
			Description: orDefault(r.Description, noDescription),
		})
	}
	for _, r := range s.TopByForks {
		section.TopReposByForks = append(section.TopReposByForks, domain.ForkedRepository{
			Name:        r.Name,
			Forks:       r.Forks,
			Description: orDefault(r.Description, noDescription),
		})
	}
	return section
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
