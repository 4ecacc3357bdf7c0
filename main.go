// github-profile-report analyzes a GitHub user's profile and writes a
// JSON report with language and activity charts.
//
// Usage:
//
//	github-profile-report analyze octocat
//	github-profile-report analyze octocat --output ./reports --token $GITHUB_TOKEN
package main

import (
	"github.com/naka-gawa/github-profile-report/cmd"
)

func main() {
	cmd.Execute()
}
