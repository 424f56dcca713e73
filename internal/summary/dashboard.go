package summary

import (
	"context"
	"sort"

	"github.com/expohall/stall-reservation-portal/internal/model"
)

// ProfileGetter fetches a user profile for the dashboard greeting.
type ProfileGetter interface {
	GetUserProfile(ctx context.Context, userID int64) (model.User, error)
}

// UserReservationLister fetches the reservations owned by one user.
type UserReservationLister interface {
	GetUserReservations(ctx context.Context, userID int64) ([]model.Reservation, error)
}

// UserDashboard is the end-user landing view: the user's profile, their
// recent reservations, the next confirmed one and current availability
// counts.
type UserDashboard struct {
	User            model.User          `json:"user"`
	Reservations    []model.Reservation `json:"reservations"`
	NextReservation *model.Reservation  `json:"nextReservation"`
	Available       int                 `json:"available"`
	Reserved        int                 `json:"reserved"`
	Blocked         int                 `json:"blocked"`
}

// FetchUserDashboard joins the profile, reservation and per-status
// stall fetches for one user.  Any failure in the group fails the
// whole view.
func FetchUserDashboard(ctx context.Context, profile ProfileGetter, reservations UserReservationLister, stalls StallLister, userID int64) (UserDashboard, error) {
	type result struct {
		apply func(*UserDashboard)
		err   error
	}

	results := make(chan result, 5)
	go func() {
		u, err := profile.GetUserProfile(ctx, userID)
		results <- result{apply: func(d *UserDashboard) { d.User = u }, err: err}
	}()
	go func() {
		list, err := reservations.GetUserReservations(ctx, userID)
		results <- result{apply: func(d *UserDashboard) { d.Reservations = list }, err: err}
	}()
	for _, status := range []string{model.StallAvailable, model.StallReserved, model.StallBlocked} {
		go func(status string) {
			list, err := stalls.GetStallsByStatus(ctx, status)
			n := len(list)
			results <- result{apply: func(d *UserDashboard) {
				switch status {
				case model.StallAvailable:
					d.Available = n
				case model.StallReserved:
					d.Reserved = n
				case model.StallBlocked:
					d.Blocked = n
				}
			}, err: err}
		}(status)
	}

	var dash UserDashboard
	var firstErr error
	for i := 0; i < 5; i++ {
		r := <-results
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		if r.err == nil {
			r.apply(&dash)
		}
	}
	if firstErr != nil {
		return UserDashboard{}, firstErr
	}

	if dash.Reservations == nil {
		dash.Reservations = []model.Reservation{}
	}
	dash.NextReservation = nextConfirmed(dash.Reservations)
	return dash, nil
}

// nextConfirmed picks the CONFIRMED reservation with the earliest
// scheduled date, or nil when there is none.
func nextConfirmed(reservations []model.Reservation) *model.Reservation {
	var confirmed []model.Reservation
	for _, r := range reservations {
		if r.Status == model.ReservationConfirmed {
			confirmed = append(confirmed, r)
		}
	}
	if len(confirmed) == 0 {
		return nil
	}
	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].ReservationDate.Before(confirmed[j].ReservationDate)
	})
	next := confirmed[0]
	return &next
}
