// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client, authentication and rate limiting.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com/"

// Page is one response of the GitHub REST API.
// Body is only set for successful responses. Next is empty on the last page.
type Page struct {
	Status int
	Body   json.RawMessage
	Next   string
}

// OK reports whether the page carries a 2xx status.
func (p *Page) OK() bool {
	return p.Status >= 200 && p.Status < 300
}

// Getter defines the transport the analysis depends on.
// A non-success status is reported through Page.Status, not as an error;
// errors are reserved for failures where no response was received.
type Getter interface {
	Get(ctx context.Context, url string, headers http.Header) (*Page, error)
}

// GitHubGateway is the concrete implementation of the Getter interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *logrus.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated client; an empty apiURL targets github.com.
func NewGitHubGateway(token, apiURL string, timeout time.Duration, logger *logrus.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport, Timeout: timeout}

	restClient := github.NewClient(httpClient)
	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != strings.TrimSuffix(DefaultAPIURL, "/") {
		restClient, err = restClient.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// Get issues a GET request. Relative URLs are resolved against the API base URL.
func (g *GitHubGateway) Get(ctx context.Context, rawURL string, headers http.Header) (*Page, error) {
	req, err := g.restClient.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	var body json.RawMessage
	resp, err := g.restClient.Do(ctx, req, &body)
	if resp == nil || resp.Response == nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Redacted(), err)
	}
	page := &Page{Status: resp.StatusCode}
	if err != nil {
		if page.OK() {
			return nil, fmt.Errorf("failed to decode response from %s: %w", req.URL.Redacted(), err)
		}
		g.logger.WithError(err).WithFields(logrus.Fields{
			"url":    req.URL.Redacted(),
			"status": resp.StatusCode,
		}).Debug("GitHub API returned a non-success status")
		return page, nil
	}

	page.Body = body
	page.Next = nextPageURL(resp.Header.Get("Link"))
	g.logger.WithFields(logrus.Fields{
		"url":       req.URL.Redacted(),
		"status":    resp.StatusCode,
		"remaining": resp.Rate.Remaining,
		"has_next":  page.Next != "",
	}).Debug("Fetched page")
	return page, nil
}

// nextPageURL returns the rel="next" target of a Link header, or "" on the last page.
// The link is followed verbatim so query parameters added by the server survive.
func nextPageURL(linkHeader string) string {
	for _, link := range strings.Split(linkHeader, ",") {
		target, params, ok := strings.Cut(link, ";")
		if !ok || !hasRel(params, "next") {
			continue
		}
		target = strings.TrimSpace(target)
		if next, ok := strings.CutPrefix(target, "<"); ok {
			if next, ok = strings.CutSuffix(next, ">"); ok {
				return next
			}
		}
	}
	return ""
}

func hasRel(params, rel string) bool {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || key != "rel" {
			continue
		}
		for _, r := range strings.Fields(strings.Trim(value, `"`)) {
			if r == rel {
				return true
			}
		}
	}
	return false
}
