// Package auth turns an inbound Authorization header into a domain.Viewer.
package auth

import (
	"strings"

	"conduit/internal/domain"
)

// Verifier decodes a raw token into an identity.
type Verifier interface {
	Verify(raw string) (domain.Identity, error)
}

var schemes = []string{"Token ", "Bearer "}

type Guard struct {
	verifier Verifier
}

func NewGuard(verifier Verifier) *Guard {
	return &Guard{verifier: verifier}
}

// Required authenticates header or fails with domain.ErrUnauthorized.
func (g *Guard) Required(header string) (domain.Viewer, error) {
	raw, ok := extract(header)
	if !ok {
		return domain.Anonymous(), domain.ErrUnauthorized
	}

	identity, err := g.verifier.Verify(raw)
	if err != nil {
		return domain.Anonymous(), domain.ErrUnauthorized
	}

	return domain.Authenticated(identity, raw), nil
}

// Optional authenticates header when it carries a valid token and falls back
// to an anonymous viewer otherwise.
func (g *Guard) Optional(header string) domain.Viewer {
	viewer, err := g.Required(header)
	if err != nil {
		return domain.Anonymous()
	}
	return viewer
}

func extract(header string) (string, bool) {
	for _, scheme := range schemes {
		if strings.HasPrefix(header, scheme) {
			raw := strings.TrimSpace(header[len(scheme):])
			return raw, raw != ""
		}
	}
	return "", false
}
