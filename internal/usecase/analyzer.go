package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/gateway"
)

// Analysis holds everything one run fetched and derived.
// It is built once by Analyzer.Run and never changed afterwards.
type Analysis struct {
	Username      string
	Profile       *domain.Profile
	Repositories  RepositoryCollection
	Contributions ContributionSample
	Languages     domain.LanguageTally
	RepoStats     domain.RepositoryStats
	Activity      domain.MonthlyActivity
	Report        domain.Report
}

// LanguageSeries returns the language chart series.
func (a *Analysis) LanguageSeries() []domain.DataPoint {
	return LanguageSeries(a.Languages)
}

// ActivitySeries returns the monthly activity chart series.
func (a *Analysis) ActivitySeries() []domain.DataPoint {
	return ActivitySeries(a.Activity)
}

// Partial reports whether any fetch stopped before its collection was exhausted.
func (a *Analysis) Partial() bool {
	return !a.Repositories.Complete || !a.Contributions.Complete
}

// Analyzer is the use case for analyzing a GitHub profile.
// It orchestrates the fetching and aggregation of data.
type Analyzer struct {
	profiles *ProfileFetcher
	repos    *RepositoryCollector
	sampler  *ContributionSampler
	logger   *logrus.Logger
	now      func() time.Time
}

// AnalyzerOption allows configuring the Analyzer.
type AnalyzerOption func(*Analyzer)

// WithClock replaces the clock used for account age and generated_at.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(getter gateway.Getter, sampleSize int, logger *logrus.Logger, opts ...AnalyzerOption) *Analyzer {
	paginator := NewPaginator(getter, logger)
	a := &Analyzer{
		profiles: NewProfileFetcher(getter, logger),
		repos:    NewRepositoryCollector(paginator, logger),
		sampler:  NewContributionSampler(paginator, sampleSize, logger),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs the main business logic. Fetches run one after another.
// Only a missing profile is fatal; other fetch failures leave partial data
// and are reported through the Complete flags of the result.
func (a *Analyzer) Run(ctx context.Context, username string) (*Analysis, error) {
	a.logger.Info("[1/4] Fetching profile...")
	profile, err := a.profiles.Fetch(ctx, username)
	if err != nil {
		return nil, err
	}

	a.logger.Info("[2/4] Fetching repositories...")
	repos := a.repos.Collect(ctx, username)
	a.logger.WithFields(logrus.Fields{
		"repositories": len(repos.Repositories),
		"complete":     repos.Complete,
	}).Info("Completed fetching repositories.")

	a.logger.Info("[3/4] Sampling contributions from the most starred repositories...")
	sample := a.sampler.Sample(ctx, username, repos.Repositories)
	a.logger.WithFields(logrus.Fields{
		"events":   len(sample.Events),
		"complete": sample.Complete,
	}).Info("Completed sampling contributions.")

	a.logger.Info("[4/4] Aggregating...")
	analysis := &Analysis{
		Username:      username,
		Profile:       profile,
		Repositories:  repos,
		Contributions: sample,
		Languages:     TallyLanguages(repos.Repositories),
		RepoStats:     SummarizeRepositories(repos.Repositories),
		Activity:      BucketMonthly(sample.Events),
	}
	analysis.Report = Compose(profile, analysis.RepoStats, repos.Complete, analysis.Languages, a.now())
	a.logger.Info("Aggregation complete.")
	return analysis, nil
}
