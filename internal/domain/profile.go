// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Profile is the account metadata of the analyzed user.
// Exactly one is fetched per run and every later stage depends on it.
type Profile struct {
	Login       string
	Name        string
	Bio         string
	Location    string
	PublicRepos int
	Followers   int
	Following   int
	CreatedAt   time.Time
}

// Repository is a single repository owned by the analyzed user.
// An empty Language means GitHub reported no primary language.
type Repository struct {
	Name        string
	Owner       string
	Language    string
	Stars       int
	Forks       int
	Description string
}

// HasLanguage reports whether the repository has a primary language.
func (r Repository) HasLanguage() bool {
	return r.Language != ""
}
