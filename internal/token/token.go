// Package token issues and verifies the signed bearer tokens that carry a
// user's identity between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"conduit/internal/domain"
)

const DefaultTTL = 30 * 24 * time.Hour

// ErrInvalid is returned for every verification failure, whatever the cause.
var ErrInvalid = errors.New("invalid token")

type claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the codec reading time from now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue signs a token for the user that expires ttl from now.
func (c *Codec) Issue(userID int64, username string) (string, error) {
	issuedAt := c.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	})
	return tok.SignedString(c.secret)
}

// Verify checks the signature and expiry of raw and returns its identity.
// A token is rejected once the current time reaches its expiry.
func (c *Codec) Verify(raw string) (domain.Identity, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return domain.Identity{}, ErrInvalid
	}
	if cl.UserID <= 0 || cl.Username == "" {
		return domain.Identity{}, ErrInvalid
	}

	return domain.Identity{
		UserID:    cl.UserID,
		Username:  cl.Username,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}
