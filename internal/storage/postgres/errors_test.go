package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"conduit/internal/domain"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		in    error
		check func(t *testing.T, err error)
	}{
		{
			name: "nil",
			in:   nil,
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "no rows",
			in:   fmt.Errorf("scan: %w", sql.ErrNoRows),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name: "unique slug",
			in:   &pq.Error{Code: "23505", Constraint: "articles_slug_key"},
			check: func(t *testing.T, err error) {
				var conflict *domain.ConflictError
				assert.ErrorAs(t, err, &conflict)
				assert.Equal(t, "slug", conflict.Field)
			},
		},
		{
			name: "unique email",
			in:   &pq.Error{Code: "23505", Constraint: "users_email_key"},
			check: func(t *testing.T, err error) {
				var conflict *domain.ConflictError
				assert.ErrorAs(t, err, &conflict)
				assert.Equal(t, "email", conflict.Field)
			},
		},
		{
			name: "foreign key",
			in:   &pq.Error{Code: "23503", Constraint: "favorites_article_id_fkey"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name: "invalid byte sequence",
			in:   &pq.Error{Code: "22021", Message: "invalid byte sequence for encoding \"UTF8\": 0x00"},
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				if assert.ErrorAs(t, err, &verr) {
					assert.Contains(t, verr.Fields, "input")
				}
				assert.NotErrorIs(t, err, domain.ErrUnavailable)
			},
		},
		{
			name: "value too long names the column",
			in:   &pq.Error{Code: "22001", Column: "title"},
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				if assert.ErrorAs(t, err, &verr) {
					assert.Equal(t, []string{"is invalid"}, verr.Fields["title"])
				}
			},
		},
		{
			name: "bad text representation",
			in:   &pq.Error{Code: "22P02"},
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
			},
		},
		{
			name: "check violation",
			in:   &pq.Error{Code: "23514", Constraint: "follows_check"},
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
			},
		},
		{
			name: "serialization failure stays unavailable",
			in:   &pq.Error{Code: "40001"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
			},
		},
		{
			name: "deadline",
			in:   context.DeadlineExceeded,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				assert.NotContains(t, err.Error(), "deadline")
			},
		},
		{
			name: "other driver error",
			in:   &pq.Error{Code: "08006", Message: "connection failure"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrUnavailable)
				var pqErr *pq.Error
				assert.False(t, errors.As(err, &pqErr))
			},
		},
		{
			name: "domain error passes through",
			in:   &domain.ConflictError{Field: "username"},
			check: func(t *testing.T, err error) {
				assert.Equal(t, &domain.ConflictError{Field: "username"}, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, translate(tt.in))
		})
	}
}

func TestWhereBuilders(t *testing.T) {
	var a args
	preds := []string{a.add("go") + " = ANY(a.tag_list)", "a.author_id = " + a.add(int64(3))}

	assert.Equal(t, "WHERE ($1 = ANY(a.tag_list) OR a.author_id = $2)", and([]string{or(preds)}))
	assert.Equal(t, "", and([]string{or(nil)}))
	assert.Len(t, a, 2)
}
