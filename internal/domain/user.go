package domain

import "time"

// Privacy levels for a user's entries.
const (
	PrivacyPrivate = "private"
	PrivacyShared  = "shared"
)

// Preferences holds per-user defaults applied when a request leaves
// them unspecified.
type Preferences struct {
	DefaultTone          Tone   `json:"default_tone"`
	PrivacySettings      string `json:"privacy_settings"`
	NotificationsEnabled bool   `json:"notification_enabled"`
}

// DefaultPreferences returns the preferences assigned at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultTone:          DefaultTone,
		PrivacySettings:      PrivacyPrivate,
		NotificationsEnabled: true,
	}
}

// User is a registered account. PasswordHash is empty for email-only
// accounts and must be stripped before the record leaves the service
// boundary.
type User struct {
	ID           string      `json:"user_id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash,omitempty"`
	Preferences  Preferences `json:"preferences"`

	// TotalEntries is an advisory counter maintained by the entry save
	// and delete paths. It never goes below zero.
	TotalEntries int `json:"total_entries"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

// Sanitized returns a copy safe to hand to clients: the credential
// never leaves the boundary.
func (u *User) Sanitized() *User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}
