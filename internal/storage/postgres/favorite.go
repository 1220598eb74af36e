package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type FavoriteStore struct {
	db *sqlx.DB
}

func NewFavoriteStore(db *sqlx.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// Add inserts the favorite edge and increments the article's counter in one
// statement. The counter only moves when the edge was absent, so repeated
// calls leave favorites_count unchanged. It reports whether the edge was created.
func (s *FavoriteStore) Add(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `
		WITH inserted AS (
			INSERT INTO favorites (user_id, article_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
			RETURNING article_id
		)
		UPDATE articles SET favorites_count = favorites_count + 1
		WHERE id IN (SELECT article_id FROM inserted)`

	return s.exec(ctx, query, userID, articleID)
}

// Remove deletes the favorite edge and decrements the counter, floored at
// zero, only when the edge existed.
func (s *FavoriteStore) Remove(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `
		WITH deleted AS (
			DELETE FROM favorites
			WHERE user_id = $1 AND article_id = $2
			RETURNING article_id
		)
		UPDATE articles SET favorites_count = GREATEST(favorites_count - 1, 0)
		WHERE id IN (SELECT article_id FROM deleted)`

	return s.exec(ctx, query, userID, articleID)
}

func (s *FavoriteStore) exec(ctx context.Context, query string, userID, articleID int64) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, userID, articleID)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// FavoritedAmong returns which of articleIDs userID has favorited.
func (s *FavoriteStore) FavoritedAmong(ctx context.Context, userID int64, articleIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(articleIDs) == 0 {
		return result, nil
	}

	query := `SELECT article_id FROM favorites WHERE user_id = $1 AND article_id = ANY($2)`

	var ids []int64
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids, query, userID, pq.Array(articleIDs)); err != nil {
		return nil, translate(err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// Reconcile resets every favorites_count that drifted from its edge count and
// returns the number of articles corrected.
func (s *FavoriteStore) Reconcile(ctx context.Context) (int64, error) {
	query := `
		UPDATE articles a SET favorites_count = c.n
		FROM (
			SELECT a2.id, COUNT(f.article_id) AS n
			FROM articles a2
			LEFT JOIN favorites f ON f.article_id = a2.id
			GROUP BY a2.id
		) c
		WHERE a.id = c.id AND a.favorites_count <> c.n`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query)
	if err != nil {
		return 0, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}
