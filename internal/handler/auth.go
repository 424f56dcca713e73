package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

// AuthHandler bundles dependencies for the auth endpoints.  Login and
// register proxy to the remote auth service; on success login writes
// the session to the store, and logout clears it.  These two handlers
// are the only writers of session state in the whole portal.
type AuthHandler struct {
	Auth     *client.AuthClient
	Sessions *session.Store
}

func NewAuthHandler(auth *client.AuthClient, sessions *session.Store) *AuthHandler {
	if auth == nil || sessions == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Auth: auth, Sessions: sessions}
}

// Login exchanges credentials for a session.  The response mirrors the
// stored session fields: token, userId and userRole.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
	}

	ctx := c.Request().Context()
	res, err := h.Auth.Login(ctx, req)
	if err != nil {
		return fail(c, err)
	}

	sess := model.Session{Token: res.Token, UserID: res.UserID, Role: res.Role}
	if err := h.Sessions.Save(ctx, sess); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not persist session"})
	}
	return c.JSON(http.StatusOK, sess)
}

// Register creates an account on the auth service.  No session is
// created; the user logs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.Registration
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
	}

	res, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Logout clears the caller's session.  Always succeeds for a
// well-formed request, even when the session was already gone.
func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing bearer token"})
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	if err := h.Sessions.Clear(c.Request().Context(), raw); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "could not clear session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile from the auth service.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	user, err := h.Auth.GetUserProfile(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile submits profile changes.  Administrators never carry a
// business name, so the field is stripped before the upstream call for
// an ADMIN session regardless of what the client sent.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req model.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if role, _ := c.Get("role").(string); role == model.RoleAdmin {
		req.BusinessName = ""
	}
	user, err := h.Auth.UpdateUserProfile(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
