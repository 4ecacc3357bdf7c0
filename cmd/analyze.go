package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-profile-report/internal/config"
	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/gateway"
	"github.com/naka-gawa/github-profile-report/internal/output"
	"github.com/naka-gawa/github-profile-report/internal/usecase"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Analyzes a GitHub profile and writes a report with charts",
	Long: `Fetches the profile and repositories of a GitHub user, samples their commits on
the most starred repositories, and produces a JSON report plus language and
monthly activity charts. Without --output the charts and report are printed.

The activity chart is an approximation built from commits authored by the user
on a few top repositories, not the full contribution calendar.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(verbose)

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg.Username = args[0]
		cfg.Verbose = verbose
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := runAnalyze(ctx, cfg, logger, cmd.OutOrStdout()); err != nil {
			if msg := diagnose(cfg.Username, err); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("token", "", "GitHub personal access token (defaults to $GITHUB_TOKEN)")
	analyzeCmd.Flags().StringP("output", "o", "", "Output folder for visualizations and reports")
	analyzeCmd.Flags().String("api-url", "", "GitHub API base URL, for GitHub Enterprise Server")
	analyzeCmd.Flags().Int("sample-repos", usecase.DefaultSampleSize, "Number of top starred repositories scanned for commits")
	analyzeCmd.Flags().Duration("timeout", 0, "Per-request timeout (defaults to $GITHUB_REQUEST_TIMEOUT or 30s)")
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// applyFlags lets explicitly set flags win over environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.Token, _ = flags.GetString("token")
	}
	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("sample-repos") {
		cfg.SampleSize, _ = flags.GetInt("sample-repos")
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout, _ = flags.GetDuration("timeout")
	}
}

// runAnalyze wires the gateway, the analyzer and the output sink for one run.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *logrus.Logger, stdout io.Writer) error {
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, cfg.APIURL, cfg.RequestTimeout, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	analyzer := usecase.NewAnalyzer(githubGateway, cfg.SampleSize, logger)

	fmt.Fprintf(stdout, "Analyzing GitHub profile for %s...\n", cfg.Username)
	analysis, err := analyzer.Run(ctx, cfg.Username)
	if err != nil {
		return err
	}
	printSummary(stdout, analysis)

	messages, err := output.NewSink(cfg.OutputDir, stdout, logger).Emit(ctx, analysis)
	if err != nil {
		return fmt.Errorf("failed to emit artifacts: %w", err)
	}
	for _, msg := range messages {
		fmt.Fprintln(stdout, msg)
	}
	fmt.Fprintln(stdout, "\nAnalysis complete!")
	return nil
}

// diagnose turns a fatal profile failure into a short hint for the user.
func diagnose(username string, err error) string {
	switch {
	case !errors.Is(err, domain.ErrProfileUnavailable):
		return ""
	case domain.IsNotFound(err):
		return fmt.Sprintf("GitHub user %q was not found.", username)
	default:
		return "Failed to fetch profile data. Check your network connection or your API rate limits."
	}
}

func printSummary(w io.Writer, analysis *usecase.Analysis) {
	summary := analysis.Report.ProfileSummary
	fmt.Fprint(w, pterm.DefaultSection.Sprint("Profile Summary"))
	fmt.Fprintf(w, "Name: %s\n", summary.Name)
	fmt.Fprintf(w, "Bio: %s\n", summary.Bio)
	fmt.Fprintf(w, "Location: %s\n", summary.Location)
	fmt.Fprintf(w, "Account created: %s (%d days ago)\n", summary.JoinDate, summary.AccountAgeDays)
	fmt.Fprintf(w, "Followers: %d\n", summary.Followers)
	fmt.Fprintf(w, "Following: %d\n", summary.Following)
	fmt.Fprintf(w, "Public repositories: %d\n", summary.PublicRepos)

	stats := analysis.Report.RepositoryStats
	fmt.Fprint(w, pterm.DefaultSection.Sprint("Repository Statistics"))
	fmt.Fprintf(w, "Total repositories: %d\n", stats.TotalRepos)
	fmt.Fprintf(w, "Total stars received: %d\n", stats.TotalStars)
	fmt.Fprintf(w, "Total forks received: %d\n", stats.TotalForks)
	fmt.Fprintf(w, "Average stars per repository: %.1f\n", stats.AvgStarsPerRepo)

	fmt.Fprint(w, pterm.DefaultSection.Sprint("Top Repositories by Stars"))
	for i, repo := range stats.TopReposByStars {
		fmt.Fprintf(w, "%d. %s - %d stars\n", i+1, repo.Name, repo.Stars)
		fmt.Fprintf(w, "   %s\n", repo.Description)
	}

	sample := analysis.Contributions
	fmt.Fprint(w, pterm.DefaultSection.Sprint("Contribution Activity"))
	fmt.Fprintf(w, "%d commits sampled from %d repositories (approximation, not the full contribution calendar)\n",
		len(sample.Events), len(sample.Repositories))
	if analysis.Partial() {
		fmt.Fprintln(w, "Some data could not be fetched; statistics cover what was retrieved.")
	}
}
