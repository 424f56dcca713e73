package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

// AuthClient wraps the auth/user service.  Login and Register run
// without a token; the profile operations require one and fail locally
// before any request when it is missing.
type AuthClient struct{ base }

func NewAuthClient(baseURL string, sess session.Source, timeout time.Duration) *AuthClient {
	return &AuthClient{newBase(baseURL, sess, timeout)}
}

// LoginResult is the session payload returned by a successful login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// envelope is the auth service's response wrapper: every 2xx body is
// {data, message, success} with the payload under "data".
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Login exchanges credentials for a session payload.
func (c *AuthClient) Login(ctx context.Context, creds model.Credentials) (LoginResult, error) {
	const op = "login"
	resp, err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, authOptional, op)
	if err != nil {
		return LoginResult{}, err
	}
	defer resp.Body.Close()
	var out LoginResult
	if err := decodeBody(resp, &out, op); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Register creates a new account.
func (c *AuthClient) Register(ctx context.Context, data model.Registration) (RegisterResult, error) {
	const op = "registration"
	resp, err := c.do(ctx, http.MethodPost, "/users/register", nil, data, authOptional, op)
	if err != nil {
		return RegisterResult{}, err
	}
	defer resp.Body.Close()
	var out RegisterResult
	if err := decodeBody(resp, &out, op); err != nil {
		return RegisterResult{}, err
	}
	return out, nil
}

// GetUserProfile fetches the profile for userID.  Requires a session.
func (c *AuthClient) GetUserProfile(ctx context.Context, userID int64) (model.User, error) {
	const op = "fetch profile"
	var env envelope[model.User]
	path := fmt.Sprintf("/users/%d", userID)
	if err := c.getJSON(ctx, path, nil, authRequired, op, &env); err != nil {
		return model.User{}, err
	}
	return env.Data, nil
}

// UpdateUserProfile submits changed profile fields and returns the
// updated profile.  Requires a session.  Callers are responsible for
// omitting BusinessName on ADMIN accounts.
func (c *AuthClient) UpdateUserProfile(ctx context.Context, data model.ProfileUpdate) (model.User, error) {
	const op = "update profile"
	resp, err := c.do(ctx, http.MethodPut, "/users/profile", nil, data, authRequired, op)
	if err != nil {
		return model.User{}, err
	}
	defer resp.Body.Close()
	var env envelope[model.User]
	if err := decodeBody(resp, &env, op); err != nil {
		return model.User{}, err
	}
	return env.Data, nil
}
