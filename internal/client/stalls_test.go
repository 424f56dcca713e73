package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

func TestGetStallByCodeNormalizesInput(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":1,"stallCode":"S001"}`))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, session.Static{}, time.Second)
	stall, err := c.GetStallByCode(context.Background(), "  s001 ")
	require.NoError(t, err)
	assert.Equal(t, "/stalls/code/S001", gotPath)
	assert.Equal(t, "S001", stall.StallCode)
}

func TestGetStallByCodeEmptyFailsLocally(t *testing.T) {
	c := client.NewStallClient("http://127.0.0.1:1", session.Static{}, time.Second)
	_, err := c.GetStallByCode(context.Background(), "   ")

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGetStallsBySizeRejectsUnknownSize(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, session.Static{}, time.Second)
	_, err := c.GetStallsBySize(context.Background(), "HUGE")

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "size must be SMALL, MEDIUM or LARGE", verr.Error())
	assert.Equal(t, 0, hits)
}

func TestGetStallsBySizeAcceptsLowercase(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":3,"size":"MEDIUM"}]`))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, session.Static{}, time.Second)
	list, err := c.GetStallsBySize(context.Background(), "medium")
	require.NoError(t, err)
	assert.Equal(t, "/stalls/size/MEDIUM", gotPath)
	require.Len(t, list, 1)
}

func TestSearchStallsByNameEmptyResultIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "corner", r.URL.Query().Get("stallName"))
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, session.Static{}, time.Second)
	list, err := c.SearchStallsByName(context.Background(), "corner")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReserveStallSendsUserIDTwice(t *testing.T) {
	var (
		gotHeader string
		gotBearer string
		gotBody   map[string]int64
		gotMethod string
		gotPath   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-User-Id")
		gotBearer = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"message":"reserved"}`))
	}))
	defer srv.Close()

	c := client.NewStallClient(srv.URL, authedSource(), time.Second)
	err := c.ReserveStall(context.Background(), 12, 7)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/stalls/12/reserve", gotPath)
	assert.Equal(t, "7", gotHeader)
	assert.Equal(t, "Bearer test-token", gotBearer)
	assert.Equal(t, map[string]int64{"userId": 7, "stallId": 12}, gotBody)
}

func TestReserveStallRequiresSession(t *testing.T) {
	c := client.NewStallClient("http://127.0.0.1:1", session.Static{}, time.Second)
	err := c.ReserveStall(context.Background(), 12, 7)
	assert.ErrorIs(t, err, client.ErrAuthRequired)
}
