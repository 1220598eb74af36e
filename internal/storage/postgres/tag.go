package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// List returns every distinct tag used by at least one article.
func (s *TagStore) List(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT t.tag
		FROM articles a, unnest(a.tag_list) AS t(tag)
		ORDER BY t.tag`

	tags := []string{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &tags, query); err != nil {
		return nil, translate(err)
	}
	return tags, nil
}
