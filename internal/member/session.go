// Package member holds the optional authenticated member session: a
// discount-tier customer identity with a bearer credential, separate from the
// staff credential namespace.
package member

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

// Profile is the member identity returned by the API on login.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Session persists at most one logged-in member. Logging in overwrites any
// prior session without confirmation.
type Session struct {
	store state.Store
}

// NewSession returns a Session backed by store.
func NewSession(store state.Store) *Session {
	return &Session{store: store}
}

// Login stores the profile and bearer token. The token becomes visible to the
// outbound request authorization layer immediately.
func (s *Session) Login(profile Profile, token string) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "encode member profile")
	}
	if err := s.store.Set(state.KeyMemberProfile, raw); err != nil {
		return errors.Wrap(err, "persist member profile")
	}
	tok, _ := json.Marshal(token)
	if err := s.store.Set(state.KeyMemberToken, tok); err != nil {
		return errors.Wrap(err, "persist member token")
	}
	return nil
}

// Logout clears both profile and token. Requests fall back to no member
// authorization afterwards.
func (s *Session) Logout() error {
	if err := s.store.Delete(state.KeyMemberToken); err != nil {
		return errors.Wrap(err, "clear member token")
	}
	if err := s.store.Delete(state.KeyMemberProfile); err != nil {
		return errors.Wrap(err, "clear member profile")
	}
	return nil
}

// Current returns the logged-in member profile, if any.
func (s *Session) Current() (Profile, bool) {
	raw, ok := s.store.Get(state.KeyMemberProfile)
	if !ok {
		return Profile{}, false
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false
	}
	return p, true
}

// Token returns the stored bearer credential, empty when logged out.
func (s *Session) Token() string {
	raw, ok := s.store.Get(state.KeyMemberToken)
	if !ok {
		return ""
	}
	var tok string
	if err := json.Unmarshal(raw, &tok); err != nil {
		return ""
	}
	return tok
}

// IsLoggedIn reports whether both profile and credential are present.
func (s *Session) IsLoggedIn() bool {
	_, ok := s.Current()
	return ok && s.Token() != ""
}
