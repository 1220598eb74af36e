package domain

import (
	"net/mail"
	"strings"
)

const MinPasswordLength = 8

type User struct {
	ID           int64   `db:"id"`
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	Bio          *string `db:"bio"`
	Image        *string `db:"image"`
}

// Profile is the public face of a user. Following is relative to the viewer
// and is never stored.
type Profile struct {
	Username  string  `db:"username"`
	Bio       *string `db:"bio"`
	Image     *string `db:"image"`
	Following bool    `db:"following"`
}

func (u User) Profile(following bool) Profile {
	return Profile{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

// AuthUser is the current user together with the token that authenticates them.
type AuthUser struct {
	User
	Token string
}

type Registration struct {
	Username string
	Email    string
	Password string
}

func (r Registration) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(r.Username) == "" {
		verr.Add("username", "can't be blank")
	}
	validateEmail(&verr, r.Email)
	validatePassword(&verr, r.Password)
	checkText(&verr, "username", r.Username)
	return verr.Err()
}

// UserPatch holds a partial profile update; nil fields are left unchanged.
// Password is plain text and hashed by the service.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Bio      *string
	Image    *string
}

func (p UserPatch) Validate() error {
	var verr ValidationError
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		verr.Add("username", "can't be blank")
	}
	if p.Email != nil {
		validateEmail(&verr, *p.Email)
	}
	if p.Password != nil {
		validatePassword(&verr, *p.Password)
	}
	checkTextPtr(&verr, "username", p.Username)
	checkTextPtr(&verr, "bio", p.Bio)
	checkTextPtr(&verr, "image", p.Image)
	return verr.Err()
}

func validateEmail(verr *ValidationError, email string) {
	if strings.TrimSpace(email) == "" {
		verr.Add("email", "can't be blank")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsRune(email, 0) {
		verr.Add("email", "is invalid")
	}
}

func validatePassword(verr *ValidationError, password string) {
	if len(password) < MinPasswordLength {
		verr.Add("password", "is too short (minimum is 8 characters)")
	}
}

// UserUpdate is a UserPatch after the password has been hashed.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Bio          *string
	Image        *string
}
