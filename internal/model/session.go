package model

// Session is the authentication context shared by every component of
// the portal.  It is written exactly twice per lifecycle: created by
// login and destroyed by logout.  All other components only read it.
// The zero value means "not authenticated".
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Role   string `json:"userRole"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool { return s.Token != "" }
