package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/search"
)

// fakeFinder lets each test script the stall service responses.
type fakeFinder struct {
	byCode     func(code string) (model.Stall, error)
	byName     func(name string) ([]model.Stall, error)
	byCategory func(category string) ([]model.Stall, error)
	bySize     func(size string) ([]model.Stall, error)
	byStatus   func(status string) ([]model.Stall, error)

	codeCalls int
}

func (f *fakeFinder) GetStallByCode(_ context.Context, code string) (model.Stall, error) {
	f.codeCalls++
	return f.byCode(code)
}

func (f *fakeFinder) SearchStallsByName(_ context.Context, name string) ([]model.Stall, error) {
	return f.byName(name)
}

func (f *fakeFinder) SearchStallsByCategory(_ context.Context, category string) ([]model.Stall, error) {
	return f.byCategory(category)
}

func (f *fakeFinder) GetStallsBySize(_ context.Context, size string) ([]model.Stall, error) {
	return f.bySize(size)
}

func (f *fakeFinder) GetStallsByStatus(_ context.Context, status string) ([]model.Stall, error) {
	return f.byStatus(status)
}

func notFound(code string) (model.Stall, error) {
	return model.Stall{}, &client.APIError{Status: 404, Op: "fetch stall"}
}

func TestSearchEmptyQueryFailsLocally(t *testing.T) {
	c := search.New(&fakeFinder{})
	_, err := c.Search(context.Background(), "   ")

	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSearchCodeShapedQueryTriesExactLookupFirst(t *testing.T) {
	f := &fakeFinder{
		byCode: func(code string) (model.Stall, error) {
			assert.Equal(t, "S001", code)
			return model.Stall{ID: 1, StallCode: "S001"}, nil
		},
		byName:     func(string) ([]model.Stall, error) { t.Fatal("name search not expected"); return nil, nil },
		byCategory: func(string) ([]model.Stall, error) { t.Fatal("category search not expected"); return nil, nil },
	}
	c := search.New(f)

	res, err := c.Search(context.Background(), "s001")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Stalls, 1)
	assert.Equal(t, "S001", res.Stalls[0].StallCode)
	assert.Equal(t, 1, f.codeCalls)
}

func TestSearchCodeMissFallsThroughToBroadSearch(t *testing.T) {
	f := &fakeFinder{
		byCode: notFound,
		byName: func(string) ([]model.Stall, error) {
			return []model.Stall{{ID: 3, StallName: "S999 Memorabilia"}}, nil
		},
		byCategory: func(string) ([]model.Stall, error) { return []model.Stall{}, nil },
	}
	c := search.New(f)

	res, err := c.Search(context.Background(), "S999")
	require.NoError(t, err)
	assert.Equal(t, 1, f.codeCalls)
	assert.Equal(t, 1, res.Count)
}

func TestSearchQueryWithSpaceSkipsCodeLookup(t *testing.T) {
	f := &fakeFinder{
		byCode: func(string) (model.Stall, error) { t.Fatal("code lookup not expected"); return model.Stall{}, nil },
		byName: func(name string) ([]model.Stall, error) {
			assert.Equal(t, "Corner Shop", name)
			return []model.Stall{{ID: 5}}, nil
		},
		byCategory: func(string) ([]model.Stall, error) { return nil, nil },
	}
	c := search.New(f)

	res, err := c.Search(context.Background(), "Corner Shop")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestSearchMergesAndDeduplicatesByID(t *testing.T) {
	f := &fakeFinder{
		byCode: notFound,
		byName: func(string) ([]model.Stall, error) {
			return []model.Stall{
				{ID: 7, StallName: "Coffee Corner", Category: "FOOD"},
				{ID: 8, StallName: "Coffee Beans"},
			}, nil
		},
		byCategory: func(string) ([]model.Stall, error) {
			return []model.Stall{
				{ID: 7, StallName: "Coffee Corner (category copy)"},
				{ID: 9, StallName: "Tea House"},
			}, nil
		},
	}
	c := search.New(f)

	res, err := c.Search(context.Background(), "coffee")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	ids := make([]int64, 0, len(res.Stalls))
	for _, s := range res.Stalls {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{7, 8, 9}, ids)
	// the entry from the name branch wins over the later category copy
	assert.Equal(t, "Coffee Corner", res.Stalls[0].StallName)
}

func TestSearchBranchFailureDegradesToEmpty(t *testing.T) {
	f := &fakeFinder{
		byCode: notFound,
		byName: func(string) ([]model.Stall, error) {
			return nil, &client.APIError{Status: 503, Op: "search stalls"}
		},
		byCategory: func(string) ([]model.Stall, error) {
			return []model.Stall{{ID: 2}}, nil
		},
	}
	c := search.New(f)

	res, err := c.Search(context.Background(), "snacks")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestFilterBySizeEmptySelectionClearsFilter(t *testing.T) {
	c := search.New(&fakeFinder{})
	list, err := c.FilterBySize(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, list, "cleared filter is nil, not an empty slice")
}

func TestFilterBySizeZeroMatchesIsEmptyNotNil(t *testing.T) {
	f := &fakeFinder{
		bySize: func(size string) ([]model.Stall, error) {
			assert.Equal(t, "LARGE", size)
			return nil, nil
		},
	}
	c := search.New(f)

	list, err := c.FilterBySize(context.Background(), "LARGE")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFilterByStatusPropagatesError(t *testing.T) {
	f := &fakeFinder{
		byStatus: func(string) ([]model.Stall, error) {
			return nil, &client.APIError{Status: 500, Op: "fetch stalls by status"}
		},
	}
	c := search.New(f)

	_, err := c.FilterByStatus(context.Background(), "AVAILABLE")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
}
