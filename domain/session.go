package domain

import "time"

// AdminUser is the authenticated back-office operator.
type AdminUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Session binds a token to an operator until ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	User      AdminUser `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session is still usable at now.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
