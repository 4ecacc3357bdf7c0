package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-profile-report/internal/domain"
	"github.com/naka-gawa/github-profile-report/internal/gateway"
)

// Pagination is the outcome of walking a paginated collection.
// Complete is false when a page failed; Items then holds every item
// gathered before the failure and Err says why it stopped.
type Pagination struct {
	Items      []json.RawMessage
	Pages      int
	Complete   bool
	LastStatus int
	Err        error
}

// Paginator follows rel="next" links until the collection is exhausted.
type Paginator struct {
	getter gateway.Getter
	logger *logrus.Logger
}

// NewPaginator creates a new Paginator instance.
func NewPaginator(getter gateway.Getter, logger *logrus.Logger) *Paginator {
	return &Paginator{getter: getter, logger: logger}
}

// DefaultHeaders returns the headers sent with every request.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", "2022-11-28")
	return h
}

// FetchAll walks the collection starting at url. It never returns an error:
// the first failing page ends the walk and is reported through the result.
func (p *Paginator) FetchAll(ctx context.Context, url string, headers http.Header) Pagination {
	result := Pagination{Items: []json.RawMessage{}}
	for next := url; next != ""; {
		page, err := p.getter.Get(ctx, next, headers)
		if err != nil {
			return p.stop(result, next, err)
		}
		result.LastStatus = page.Status
		if !page.OK() {
			return p.stop(result, next, domain.NewStatusError(next, page.Status))
		}

		var items []json.RawMessage
		if err := json.Unmarshal(page.Body, &items); err != nil {
			return p.stop(result, next, fmt.Errorf("page is not a JSON array: %w", err))
		}
		result.Items = append(result.Items, items...)
		result.Pages++
		next = page.Next
		if next != "" {
			p.logger.Debugf("  Fetching page %d...", result.Pages+1)
		}
	}
	result.Complete = true
	return result
}

func (p *Paginator) stop(result Pagination, url string, err error) Pagination {
	result.Err = err
	p.logger.WithError(err).WithFields(logrus.Fields{
		"url":            url,
		"pages_fetched":  result.Pages,
		"items_gathered": len(result.Items),
	}).Warn("Pagination stopped early; continuing with partial data")
	return result
}
