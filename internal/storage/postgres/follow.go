package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type FollowStore struct {
	db *sqlx.DB
}

func NewFollowStore(db *sqlx.DB) *FollowStore {
	return &FollowStore{db: db}
}

// Add creates the edge followerID -> followedID. It reports whether the edge
// was absent before; an existing edge is left as is.
func (s *FollowStore) Add(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	return s.exec(ctx, query, followerID, followedID)
}

// Remove deletes the edge followerID -> followedID and reports whether it existed.
func (s *FollowStore) Remove(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	return s.exec(ctx, query, followerID, followedID)
}

func (s *FollowStore) exec(ctx context.Context, query string, followerID, followedID int64) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (s *FollowStore) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`

	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists, query, followerID, followedID); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

// FollowedAmong returns which of userIDs followerID follows.
func (s *FollowStore) FollowedAmong(ctx context.Context, followerID int64, userIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	if len(userIDs) == 0 {
		return result, nil
	}

	query := `SELECT followed_id FROM follows WHERE follower_id = $1 AND followed_id = ANY($2)`

	var ids []int64
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids, query, followerID, pq.Array(userIDs)); err != nil {
		return nil, translate(err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
