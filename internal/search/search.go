// Package search implements the portal's stall search and filter
// controls.  The combined search resolves free-form input to stall
// records: queries shaped like a stall code try an exact lookup first,
// everything else fans out to name and category search and merges the
// results.
package search

import (
	"context"
	"strings"
	"sync"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/model"
)

// StallFinder is the subset of the stall client the controller uses.
type StallFinder interface {
	GetStallByCode(ctx context.Context, code string) (model.Stall, error)
	SearchStallsByName(ctx context.Context, name string) ([]model.Stall, error)
	SearchStallsByCategory(ctx context.Context, category string) ([]model.Stall, error)
	GetStallsBySize(ctx context.Context, size string) ([]model.Stall, error)
	GetStallsByStatus(ctx context.Context, status string) ([]model.Stall, error)
}

// Controller answers search and filter submissions.  It holds no state
// of its own; every call is a fresh resolution against the service.
type Controller struct {
	stalls StallFinder
}

func New(stalls StallFinder) *Controller {
	return &Controller{stalls: stalls}
}

// Result is a resolved search: the matched stalls and their count.
type Result struct {
	Stalls []model.Stall `json:"stalls"`
	Count  int           `json:"count"`
}

// Search resolves a free-form query.  Input that looks like a stall
// code (uppercase alphanumerics and hyphens, no spaces) is tried as an
// exact code lookup first; when that finds nothing, or the input never
// looked like a code, name search and category search run concurrently
// and merge.  Individual branch failures degrade to empty lists so one
// unreachable index does not sink the whole search.  Merging
// deduplicates by stall id and the first occurrence wins.
func (c *Controller) Search(ctx context.Context, query string) (Result, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Result{}, &client.ValidationError{Reason: "enter stall code, name or category"}
	}

	upper := strings.ToUpper(q)
	looksLikeCode := model.ValidCode(upper) && !strings.Contains(q, " ")
	if looksLikeCode {
		if stall, err := c.stalls.GetStallByCode(ctx, upper); err == nil {
			return Result{Stalls: []model.Stall{stall}, Count: 1}, nil
		}
		// not found by code: fall through to the broad search
	}

	var byName, byCategory []model.Stall
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		byName, _ = c.stalls.SearchStallsByName(ctx, q)
	}()
	go func() {
		defer wg.Done()
		byCategory, _ = c.stalls.SearchStallsByCategory(ctx, q)
	}()
	wg.Wait()

	merged := mergeByID(byName, byCategory)
	return Result{Stalls: merged, Count: len(merged)}, nil
}

// FilterBySize resolves a size filter submission.  An empty selection
// clears the filter: the nil result tells the caller to show the
// unfiltered collection, which is distinct from an empty slice meaning
// "filtered to zero results".
func (c *Controller) FilterBySize(ctx context.Context, size string) ([]model.Stall, error) {
	if strings.TrimSpace(size) == "" {
		return nil, nil
	}
	list, err := c.stalls.GetStallsBySize(ctx, size)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Stall{}
	}
	return list, nil
}

// FilterByStatus resolves a status filter submission, with the same
// nil-means-cleared convention as FilterBySize.
func (c *Controller) FilterByStatus(ctx context.Context, status string) ([]model.Stall, error) {
	if strings.TrimSpace(status) == "" {
		return nil, nil
	}
	list, err := c.stalls.GetStallsByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Stall{}
	}
	return list, nil
}

// mergeByID concatenates the lists, dropping any stall whose id was
// already seen.  Earlier entries are never overwritten by later ones.
func mergeByID(lists ...[]model.Stall) []model.Stall {
	seen := make(map[int64]bool)
	merged := []model.Stall{}
	for _, list := range lists {
		for _, s := range list {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			merged = append(merged, s)
		}
	}
	return merged
}
