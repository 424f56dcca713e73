package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

func authedSource() session.Source {
	return session.Static{Token: "test-token", UserID: 7, Role: "USER"}
}

func TestAPIErrorMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Stall is already reserved"}`))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, authedSource(), time.Second)
	_, err := c.GetStalls(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Stall is already reserved", apiErr.Error())
}

func TestAPIErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, authedSource(), time.Second)
	_, err := c.GetStalls(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "fetch stalls failed (502)", apiErr.Error())
}

func TestAuthRequiredWithoutSession(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.NewReservationClient(srv.URL, session.Static{}, time.Second)
	_, err := c.GetReservations(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrAuthRequired))
	assert.Equal(t, 0, hits, "no request should go out without a token")
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.NewReservationClient(srv.URL, authedSource(), time.Second)
	_, err := c.GetReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", got)
}
