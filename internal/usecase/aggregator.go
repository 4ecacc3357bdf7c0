// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

const (
	// TopRepositoryCount bounds both repository rankings of the report.
	TopRepositoryCount = 5
	// TopLanguageCount bounds the language ranking of the report.
	TopLanguageCount = 10
	// ChartLanguageLimit is the most slices the language chart shows.
	ChartLanguageLimit = 8
	// OtherLabel names the slice that collects the remaining languages.
	OtherLabel = "Other"

	monthLayout = "2006-01"
)

func byStars(r domain.Repository) int { return r.Stars }
func byForks(r domain.Repository) int { return r.Forks }

// TopN returns up to n repositories ordered by key, highest first.
// Ties keep their fetch order. The input is not modified.
func TopN(repos []domain.Repository, n int, key func(domain.Repository) int) []domain.Repository {
	ranked := make([]domain.Repository, len(repos))
	copy(ranked, repos)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TallyLanguages counts repositories per primary language.
// Repositories without a language are left out entirely.
func TallyLanguages(repos []domain.Repository) domain.LanguageTally {
	tally := domain.LanguageTally{}
	for _, repo := range repos {
		if repo.HasLanguage() {
			tally[repo.Language]++
		}
	}
	return tally
}

// SummarizeRepositories computes totals, the average star count and the two
// top-5 rankings. An empty input yields zeros and empty rankings.
func SummarizeRepositories(repos []domain.Repository) domain.RepositoryStats {
	summary := domain.RepositoryStats{
		Total:      len(repos),
		TopByStars: TopN(repos, TopRepositoryCount, byStars),
		TopByForks: TopN(repos, TopRepositoryCount, byForks),
	}
	starCounts := make(stats.Float64Data, 0, len(repos))
	for _, repo := range repos {
		summary.TotalStars += repo.Stars
		summary.TotalForks += repo.Forks
		starCounts = append(starCounts, float64(repo.Stars))
	}
	if mean, err := stats.Mean(starCounts); err == nil {
		summary.AvgStarsPerRepo = mean
	}
	return summary
}

// BucketMonthly counts events per YYYY-MM month.
func BucketMonthly(events []domain.ContributionEvent) domain.MonthlyActivity {
	activity := domain.MonthlyActivity{}
	for _, event := range events {
		activity[event.Timestamp.Format(monthLayout)]++
	}
	return activity
}

// TopLanguages ranks the tally by descending count, ties by name, keeping at most n entries.
func TopLanguages(tally domain.LanguageTally, n int) domain.LanguageRanking {
	ranking := make(domain.LanguageRanking, 0, len(tally))
	for language, count := range tally {
		ranking = append(ranking, domain.LanguageCount{Language: language, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Language < ranking[j].Language
	})
	if n >= 0 && n < len(ranking) {
		ranking = ranking[:n]
	}
	return ranking
}

// LanguageSeries is the series fed to the language chart. With more than
// ChartLanguageLimit languages, the tail is folded into a single "Other" slice.
func LanguageSeries(tally domain.LanguageTally) []domain.DataPoint {
	ranking := TopLanguages(tally, -1)
	series := make([]domain.DataPoint, 0, ChartLanguageLimit)
	if len(ranking) <= ChartLanguageLimit {
		for _, lc := range ranking {
			series = append(series, domain.DataPoint{Label: lc.Language, Value: lc.Count})
		}
		return series
	}

	kept := ChartLanguageLimit - 1
	for _, lc := range ranking[:kept] {
		series = append(series, domain.DataPoint{Label: lc.Language, Value: lc.Count})
	}
	other := 0
	for _, lc := range ranking[kept:] {
		other += lc.Count
	}
	return append(series, domain.DataPoint{Label: OtherLabel, Value: other})
}

// ActivitySeries is the series fed to the activity chart, oldest month first.
func ActivitySeries(activity domain.MonthlyActivity) []domain.DataPoint {
	series := make([]domain.DataPoint, 0, len(activity))
	for _, month := range activity.Months() {
		series = append(series, domain.DataPoint{Label: month, Value: activity[month]})
	}
	return series
}
