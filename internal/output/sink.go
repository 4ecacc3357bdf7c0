// Package output emits the artifacts of an analysis: the JSON report and
// the two charts, either as files in a directory or on the terminal.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/usecase"
	"github.com/naka-gawa/github-profile-report/internal/visualizer"
)

const (
	noLanguageData = "No language data available."
	noActivityData = "No contribution data available."
)

// Sink writes artifacts into dir, or displays them on stdout when dir is empty.
type Sink struct {
	dir    string
	stdout io.Writer
	logger *logrus.Logger
}

// NewSink creates a new Sink instance.
func NewSink(dir string, stdout io.Writer, logger *logrus.Logger) *Sink {
	return &Sink{dir: dir, stdout: stdout, logger: logger}
}

// Paths returns the artifact file names used for username inside dir.
func Paths(dir, username string) (report, languages, activity string) {
	return filepath.Join(dir, username+"_report.json"),
		filepath.Join(dir, username+"_languages.html"),
		filepath.Join(dir, username+"_activity.html")
}

// Emit produces the three artifacts and returns one status line per artifact,
// in the order languages, activity, report.
func (s *Sink) Emit(ctx context.Context, analysis *usecase.Analysis) ([]string, error) {
	if s.dir == "" {
		return s.display(analysis)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	reportPath, languagesPath, activityPath := Paths(s.dir, analysis.Username)
	languageTitle := visualizer.LanguageTitle(analysis.Username)
	activityTitle := visualizer.ActivityTitle(analysis.Username, len(analysis.Contributions.Repositories))

	// Rendering happens after all fetching, so the three writers share nothing.
	messages := make([]string, 3)
	var eg errgroup.Group
	eg.Go(func() error {
		msg, err := writeChart(languagesPath, "Language", noLanguageData, func(w io.Writer) error {
			return visualizer.LanguagePie(w, languageTitle, analysis.LanguageSeries())
		})
		messages[0] = msg
		return err
	})
	eg.Go(func() error {
		msg, err := writeChart(activityPath, "Activity", noActivityData, func(w io.Writer) error {
			return visualizer.ActivityBar(w, activityTitle, analysis.ActivitySeries())
		})
		messages[1] = msg
		return err
	})
	eg.Go(func() error {
		data, err := marshalReport(analysis.Report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		messages[2] = fmt.Sprintf("Report saved to %s", reportPath)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	s.logger.WithField("dir", s.dir).Debug("Artifacts written")
	return messages, nil
}

func (s *Sink) display(analysis *usecase.Analysis) ([]string, error) {
	terminal := visualizer.NewTerminal(s.stdout)
	messages := make([]string, 0, 3)

	err := terminal.Bars(visualizer.LanguageTitle(analysis.Username), analysis.LanguageSeries())
	switch {
	case errors.Is(err, visualizer.ErrNoData):
		messages = append(messages, noLanguageData)
	case err != nil:
		return nil, err
	default:
		messages = append(messages, "Language visualization displayed")
	}

	activityTitle := visualizer.ActivityTitle(analysis.Username, len(analysis.Contributions.Repositories))
	err = terminal.Bars(activityTitle, analysis.ActivitySeries())
	switch {
	case errors.Is(err, visualizer.ErrNoData):
		messages = append(messages, noActivityData)
	case err != nil:
		return nil, err
	default:
		messages = append(messages, "Activity visualization displayed")
	}

	data, err := marshalReport(analysis.Report)
	if err != nil {
		return nil, err
	}
	if _, err := s.stdout.Write(data); err != nil {
		return nil, fmt.Errorf("failed to print report: %w", err)
	}
	return append(messages, "Report generated successfully."), nil
}

// writeChart renders into memory first so an empty series leaves no file behind.
func writeChart(path, kind, emptyMessage string, render func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if errors.Is(err, visualizer.ErrNoData) {
			return emptyMessage, nil
		}
		return "", fmt.Errorf("failed to render %s chart: %w", kind, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s chart: %w", kind, err)
	}
	return fmt.Sprintf("%s visualization saved to %s", kind, path), nil
}

func marshalReport(report domain.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return append(data, '\n'), nil
}
