package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

// StallClient wraps the stall service.  The lookup and search methods
// validate their input locally and fail fast before any network call
// when it is empty or, for sizes, outside the enumerated set.  The
// token is attached when the session has one; browsing works without.
type StallClient struct{ base }

func NewStallClient(baseURL string, sess session.Source, timeout time.Duration) *StallClient {
	return &StallClient{newBase(baseURL, sess, timeout)}
}

// GetStalls returns the full stall inventory.
func (c *StallClient) GetStalls(ctx context.Context) ([]model.Stall, error) {
	var out []model.Stall
	if err := c.getJSON(ctx, "/stalls", nil, authOptional, "fetch stalls", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStallByCode looks up exactly one stall by its unique code.  The
// code is trimmed and uppercased before the request.
func (c *StallClient) GetStallByCode(ctx context.Context, code string) (model.Stall, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.Stall{}, &ValidationError{Reason: "stall code required"}
	}
	var out model.Stall
	path := "/stalls/code/" + url.PathEscape(code)
	if err := c.getJSON(ctx, path, nil, authOptional, "fetch stall", &out); err != nil {
		return model.Stall{}, err
	}
	return out, nil
}

// SearchStallsByName returns stalls whose name matches the query.
func (c *StallClient) SearchStallsByName(ctx context.Context, name string) ([]model.Stall, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Reason: "stall name required"}
	}
	q := url.Values{"stallName": {name}}
	var out []model.Stall
	if err := c.getJSON(ctx, "/stalls/search/name", q, authOptional, "search stalls", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Stall{}
	}
	return out, nil
}

// SearchStallsByCategory returns stalls in the given category.
func (c *StallClient) SearchStallsByCategory(ctx context.Context, category string) ([]model.Stall, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, &ValidationError{Reason: "category required"}
	}
	q := url.Values{"category": {category}}
	var out []model.Stall
	if err := c.getJSON(ctx, "/stalls/search/category", q, authOptional, "search stalls", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Stall{}
	}
	return out, nil
}

// GetStallsBySize returns all stalls of one size class.  The size must
// be SMALL, MEDIUM or LARGE; anything else fails before the request.
func (c *StallClient) GetStallsBySize(ctx context.Context, size string) ([]model.Stall, error) {
	size = strings.ToUpper(strings.TrimSpace(size))
	if !model.ValidSize(size) {
		return nil, &ValidationError{Reason: "size must be SMALL, MEDIUM or LARGE"}
	}
	var out []model.Stall
	if err := c.getJSON(ctx, "/stalls/size/"+size, nil, authOptional, "fetch stalls by size", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStallsByStatus returns all stalls with the given status.
func (c *StallClient) GetStallsByStatus(ctx context.Context, status string) ([]model.Stall, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" {
		return nil, &ValidationError{Reason: "status required"}
	}
	var out []model.Stall
	if err := c.getJSON(ctx, "/stalls/status/"+url.PathEscape(status), nil, authOptional, "fetch stalls by status", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStall registers a new stall.  Administrator operation; the
// service enforces stall code uniqueness and replies 409 on duplicates.
func (c *StallClient) CreateStall(ctx context.Context, stall model.Stall) (model.Stall, error) {
	const op = "create stall"
	resp, err := c.do(ctx, http.MethodPost, "/stalls", nil, stall, authRequired, op)
	if err != nil {
		return model.Stall{}, err
	}
	defer resp.Body.Close()
	var out model.Stall
	if err := decodeBody(resp, &out, op); err != nil {
		return model.Stall{}, err
	}
	return out, nil
}

// UpdateStall edits an existing stall.  Administrator operation.
func (c *StallClient) UpdateStall(ctx context.Context, id int64, stall model.Stall) (model.Stall, error) {
	const op = "update stall"
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/stalls/%d", id), nil, stall, authRequired, op)
	if err != nil {
		return model.Stall{}, err
	}
	defer resp.Body.Close()
	var out model.Stall
	if err := decodeBody(resp, &out, op); err != nil {
		return model.Stall{}, err
	}
	return out, nil
}

// ReserveStall asks the stall service to mark a stall RESERVED on
// behalf of userID.  The user id travels both as the X-User-Id header
// and in the body, which is what the service expects.
func (c *StallClient) ReserveStall(ctx context.Context, stallID, userID int64) error {
	const op = "reservation"
	body := map[string]int64{"userId": userID, "stallId": stallID}
	path := fmt.Sprintf("/stalls/%d/reserve", stallID)
	headers := map[string]string{"X-User-Id": fmt.Sprintf("%d", userID)}

	resp, err := c.doHeaders(ctx, http.MethodPut, path, nil, body, authRequired, op, headers)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
