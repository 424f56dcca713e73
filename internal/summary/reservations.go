// Package summary derives dashboard figures from fetched collections.
// The reductions are pure and synchronous; the stall summary issues its
// own joined fetches.  Nothing in this package mutates remote state, so
// every view is safe to recompute on each mount.
package summary

import (
	"sort"

	"github.com/expohall/stall-reservation-portal/internal/model"
)

const recentPendingLimit = 5

// ReservationStats is the reservation status breakdown shown on the
// administrator dashboard.
type ReservationStats struct {
	Total         int                 `json:"total"`
	Pending       int                 `json:"pending"`
	Confirmed     int                 `json:"confirmed"`
	Cancelled     int                 `json:"cancelled"`
	TotalRevenue  float64             `json:"totalRevenue"`
	RecentPending []model.Reservation `json:"recentPending"`
}

// Reduce computes the stats for an already-fetched collection.  Revenue
// counts CONFIRMED reservations only.  RecentPending holds the five
// most recent PENDING reservations by creation time, newest first.
func Reduce(reservations []model.Reservation) ReservationStats {
	stats := ReservationStats{Total: len(reservations)}

	var pending []model.Reservation
	for _, r := range reservations {
		switch r.Status {
		case model.ReservationPending:
			stats.Pending++
			pending = append(pending, r)
		case model.ReservationConfirmed:
			stats.Confirmed++
			stats.TotalRevenue += r.TotalAmount
		case model.ReservationCancelled:
			stats.Cancelled++
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	if len(pending) > recentPendingLimit {
		pending = pending[:recentPendingLimit]
	}
	if pending == nil {
		pending = []model.Reservation{}
	}
	stats.RecentPending = pending
	return stats
}

// Percentage returns count/total as a percentage, and 0 when total is
// zero so empty collections never divide by zero.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
