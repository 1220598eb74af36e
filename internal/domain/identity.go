package domain

import "time"

// Identity is the verified content of a bearer token. It lives for one request.
type Identity struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Viewer is either anonymous or an authenticated identity together with the
// raw token it was decoded from.
type Viewer struct {
	identity *Identity
	token    string
}

func Anonymous() Viewer {
	return Viewer{}
}

func Authenticated(identity Identity, rawToken string) Viewer {
	return Viewer{identity: &identity, token: rawToken}
}

func (v Viewer) Identity() (Identity, bool) {
	if v.identity == nil {
		return Identity{}, false
	}
	return *v.identity, true
}

func (v Viewer) IsAnonymous() bool { return v.identity == nil }

// Token returns the raw token for authenticated viewers, "" otherwise.
func (v Viewer) Token() string { return v.token }

// UserID returns nil for anonymous viewers so it can be bound as SQL NULL.
func (v Viewer) UserID() *int64 {
	if v.identity == nil {
		return nil
	}
	id := v.identity.UserID
	return &id
}
