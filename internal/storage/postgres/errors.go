package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conduit/internal/domain"
)

// constraintFields maps unique constraints from migrations/001_init.up.sql to
// the field reported in a conflict.
var constraintFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
	"articles_slug_key":  "slug",
}

// translate maps driver errors onto the domain taxonomy. Errors that already
// belong to it pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			field, ok := constraintFields[pqErr.Constraint]
			if !ok {
				field = pqErr.Constraint
			}
			return &domain.ConflictError{Field: field}
		case "foreign_key_violation":
			return domain.ErrNotFound
		case "check_violation":
			return invalid(pqErr)
		}
		// Class 22 is data exceptions: bad encoding, overlong values, bad casts.
		if pqErr.Code.Class() == "22" {
			return invalid(pqErr)
		}
	}

	return domain.Unavailable(err)
}

// invalid reports input the store rejected. The field is the column when the
// server names one.
func invalid(pqErr *pq.Error) error {
	field := pqErr.Column
	if field == "" {
		field = "input"
	}
	verr := &domain.ValidationError{}
	verr.Add(field, "is invalid")
	return verr
}

func isDomainError(err error) bool {
	var conflict *domain.ConflictError
	var validation *domain.ValidationError
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUnavailable) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.As(err, &conflict) ||
		errors.As(err, &validation)
}
