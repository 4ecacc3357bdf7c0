package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GeneratedAtLayout is the timestamp layout of Report.GeneratedAt.
const GeneratedAtLayout = "2006-01-02 15:04:05"

// RepositoryStats holds the totals and rankings derived from the repository list.
type RepositoryStats struct {
	Total           int
	TotalStars      int
	TotalForks      int
	AvgStarsPerRepo float64
	TopByStars      []Repository
	TopByForks      []Repository
}

// Report is the aggregate root written at the end of a run.
type Report struct {
	ProfileSummary  ProfileSummary    `json:"profile_summary"`
	RepositoryStats RepositorySection `json:"repository_stats"`
	TopLanguages    LanguageRanking   `json:"top_languages"`
	GeneratedAt     string            `json:"generated_at"`
}

// ProfileSummary is the profile part of the report.
type ProfileSummary struct {
	Username       string `json:"username"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
	PublicRepos    int    `json:"public_repos"`
	Followers      int    `json:"followers"`
	Following      int    `json:"following"`
	JoinDate       string `json:"join_date"`
	AccountAgeDays int    `json:"account_age_days"`
}

// RepositorySection is the repository part of the report.
// Complete is false when repository pagination stopped early.
type RepositorySection struct {
	TotalRepos      int                 `json:"total_repos"`
	TotalStars      int                 `json:"total_stars"`
	TotalForks      int                 `json:"total_forks"`
	AvgStarsPerRepo float64             `json:"avg_stars_per_repo"`
	TopReposByStars []StarredRepository `json:"top_repos_by_stars"`
	TopReposByForks []ForkedRepository  `json:"top_repos_by_forks"`
	Complete        bool                `json:"complete"`
}

// StarredRepository is an entry of top_repos_by_stars.
type StarredRepository struct {
	Name        string `json:"name"`
	Stars       int    `json:"stars"`
	Description string `json:"description"`
}

// ForkedRepository is an entry of top_repos_by_forks.
type ForkedRepository struct {
	Name        string `json:"name"`
	Forks       int    `json:"forks"`
	Description string `json:"description"`
}

// LanguageCount is one entry of a LanguageRanking.
type LanguageCount struct {
	Language string
	Count    int
}

// LanguageRanking is an ordered list of languages.
// It is encoded as a JSON object whose key order follows the ranking.
type LanguageRanking []LanguageCount

// MarshalJSON implements json.Marshaler.
func (r LanguageRanking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lc := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lc.Language)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", lc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping the key order of the document.
func (r *LanguageRanking) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("top_languages: expected object, got %v", tok)
	}
	ranking := LanguageRanking{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		language, _ := tok.(string)
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("top_languages[%s]: %w", language, err)
		}
		ranking = append(ranking, LanguageCount{Language: language, Count: count})
	}
	*r = ranking
	return nil
}
