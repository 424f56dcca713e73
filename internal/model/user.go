package model

import "time"

// Roles recognised by the auth service.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is a profile record served by the auth/user service.  The
// BusinessName field only applies to USER accounts; administrators
// never carry one and profile updates for them must omit it.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	BusinessName  string    `json:"businessName,omitempty"`
	ContactPerson string    `json:"contactPerson"`
	PhoneNumber   string    `json:"phoneNumber"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Credentials is the login request body sent to the auth service.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up request body.  Password is forwarded
// verbatim to the auth service and never stored by the portal.
type Registration struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	BusinessName  string `json:"businessName,omitempty"`
	ContactPerson string `json:"contactPerson"`
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
}

// ProfileUpdate carries the mutable profile fields.  Handlers strip
// BusinessName before submitting an update for an ADMIN account.
type ProfileUpdate struct {
	BusinessName  string `json:"businessName,omitempty"`
	ContactPerson string `json:"contactPerson"`
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
}
