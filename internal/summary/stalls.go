package summary

import (
	"context"

	"github.com/expohall/stall-reservation-portal/internal/model"
)

// StallLister is the slice of the stall client the stall summary uses.
type StallLister interface {
	GetStallsByStatus(ctx context.Context, status string) ([]model.Stall, error)
	GetStallsBySize(ctx context.Context, size string) ([]model.Stall, error)
}

// StallStats is the stall inventory breakdown by status and size.
type StallStats struct {
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Blocked   int `json:"blocked"`
	Small     int `json:"small"`
	Medium    int `json:"medium"`
	Large     int `json:"large"`
	Total     int `json:"total"`
}

// FetchStallStats issues the six per-status and per-size requests
// concurrently and joins them into counts.  A failure in any one of
// the group surfaces as a single aggregate failure for the view.
// Total is the sum of the three status buckets.
func FetchStallStats(ctx context.Context, stalls StallLister) (StallStats, error) {
	type slot struct {
		idx int
		n   int
		err error
	}

	fetches := []func(context.Context) ([]model.Stall, error){
		func(ctx context.Context) ([]model.Stall, error) { return stalls.GetStallsByStatus(ctx, model.StallAvailable) },
		func(ctx context.Context) ([]model.Stall, error) { return stalls.GetStallsByStatus(ctx, model.StallReserved) },
		func(ctx context.Context) ([]model.Stall, error) { return stalls.GetStallsByStatus(ctx, model.StallBlocked) },
		func(ctx context.Context) ([]model.Stall, error) { return stalls.GetStallsBySize(ctx, model.SizeSmall) },
		func(ctx context.Context) ([]model.Stall, error) { return stalls.GetStallsBySize(ctx, model.SizeMedium) },
		func(ctx context.Context) ([]model.Stall, error) { return stalls.GetStallsBySize(ctx, model.SizeLarge) },
	}

	results := make(chan slot, len(fetches))
	for i, fetch := range fetches {
		go func(i int, fetch func(context.Context) ([]model.Stall, error)) {
			list, err := fetch(ctx)
			results <- slot{idx: i, n: len(list), err: err}
		}(i, fetch)
	}

	counts := make([]int, len(fetches))
	var firstErr error
	for range fetches {
		s := <-results
		if s.err != nil && firstErr == nil {
			firstErr = s.err
		}
		counts[s.idx] = s.n
	}
	if firstErr != nil {
		return StallStats{}, firstErr
	}

	stats := StallStats{
		Available: counts[0],
		Reserved:  counts[1],
		Blocked:   counts[2],
		Small:     counts[3],
		Medium:    counts[4],
		Large:     counts[5],
	}
	stats.Total = stats.Available + stats.Reserved + stats.Blocked
	return stats, nil
}
