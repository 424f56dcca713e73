package summary_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/summary"
)

func res(id int64, status string, amount float64, created time.Time) model.Reservation {
	return model.Reservation{ID: id, Status: status, TotalAmount: amount, CreatedAt: created}
}

func TestReduceCountsAndRevenue(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	stats := summary.Reduce([]model.Reservation{
		res(1, model.ReservationPending, 100, base),
		res(2, model.ReservationConfirmed, 250, base.Add(time.Hour)),
		res(3, model.ReservationConfirmed, 150, base.Add(2*time.Hour)),
		res(4, model.ReservationCancelled, 999, base.Add(3*time.Hour)),
	})

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, stats.Total, stats.Pending+stats.Confirmed+stats.Cancelled)
	assert.Equal(t, 400.0, stats.TotalRevenue, "cancelled amounts never count as revenue")
}

func TestReduceRecentPendingNewestFirstCapped(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var list []model.Reservation
	for i := int64(1); i <= 7; i++ {
		list = append(list, res(i, model.ReservationPending, 100, base.Add(time.Duration(i)*time.Hour)))
	}

	stats := summary.Reduce(list)
	require.Len(t, stats.RecentPending, 5)
	assert.Equal(t, int64(7), stats.RecentPending[0].ID)
	assert.Equal(t, int64(3), stats.RecentPending[4].ID)
}

func TestReduceEmptyCollection(t *testing.T) {
	stats := summary.Reduce(nil)
	assert.Equal(t, 0, stats.Total)
	assert.NotNil(t, stats.RecentPending)
	assert.Empty(t, stats.RecentPending)
}

func TestPercentageZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, summary.Percentage(5, 0))
	assert.Equal(t, 25.0, summary.Percentage(1, 4))
}

// fakeStallLister serves canned per-status and per-size collections.
type fakeStallLister struct {
	byStatus map[string][]model.Stall
	bySize   map[string][]model.Stall
	err      error
}

func (f *fakeStallLister) GetStallsByStatus(_ context.Context, status string) ([]model.Stall, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byStatus[status], nil
}

func (f *fakeStallLister) GetStallsBySize(_ context.Context, size string) ([]model.Stall, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bySize[size], nil
}

func stalls(n int) []model.Stall { return make([]model.Stall, n) }

func TestFetchStallStats(t *testing.T) {
	lister := &fakeStallLister{
		byStatus: map[string][]model.Stall{
			model.StallAvailable: stalls(6),
			model.StallReserved:  stalls(3),
			model.StallBlocked:   stalls(1),
		},
		bySize: map[string][]model.Stall{
			model.SizeSmall:  stalls(4),
			model.SizeMedium: stalls(4),
			model.SizeLarge:  stalls(2),
		},
	}

	stats, err := summary.FetchStallStats(context.Background(), lister)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Available)
	assert.Equal(t, 3, stats.Reserved)
	assert.Equal(t, 1, stats.Blocked)
	assert.Equal(t, 4, stats.Small)
	assert.Equal(t, 4, stats.Medium)
	assert.Equal(t, 2, stats.Large)
	assert.Equal(t, 10, stats.Total, "total is the sum of the status buckets")
}

func TestFetchStallStatsAggregateFailure(t *testing.T) {
	lister := &fakeStallLister{err: &client.APIError{Status: 503, Op: "fetch stalls by status"}}
	_, err := summary.FetchStallStats(context.Background(), lister)
	require.Error(t, err)
}

type fakeProfileGetter struct{ user model.User }

func (f *fakeProfileGetter) GetUserProfile(context.Context, int64) (model.User, error) {
	return f.user, nil
}

type fakeUserReservations struct {
	list []model.Reservation
	err  error
}

func (f *fakeUserReservations) GetUserReservations(context.Context, int64) ([]model.Reservation, error) {
	return f.list, f.err
}

func TestFetchUserDashboard(t *testing.T) {
	early := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	next := res(2, model.ReservationConfirmed, 200, early)
	next.ReservationDate = early
	other := res(3, model.ReservationConfirmed, 300, late)
	other.ReservationDate = late

	lister := &fakeStallLister{
		byStatus: map[string][]model.Stall{
			model.StallAvailable: stalls(5),
			model.StallReserved:  stalls(2),
		},
	}
	dash, err := summary.FetchUserDashboard(
		context.Background(),
		&fakeProfileGetter{user: model.User{ID: 7, ContactPerson: "Dana Vendor"}},
		&fakeUserReservations{list: []model.Reservation{res(1, model.ReservationPending, 100, early), other, next}},
		lister,
		7,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(7), dash.User.ID)
	assert.Len(t, dash.Reservations, 3)
	require.NotNil(t, dash.NextReservation)
	assert.Equal(t, int64(2), dash.NextReservation.ID, "earliest confirmed reservation is next")
	assert.Equal(t, 5, dash.Available)
	assert.Equal(t, 2, dash.Reserved)
	assert.Equal(t, 0, dash.Blocked)
}

func TestFetchUserDashboardFailsAsOne(t *testing.T) {
	lister := &fakeStallLister{}
	_, err := summary.FetchUserDashboard(
		context.Background(),
		&fakeProfileGetter{},
		&fakeUserReservations{err: &client.APIError{Status: 500, Op: "fetch reservations"}},
		lister,
		7,
	)
	require.Error(t, err)
}
