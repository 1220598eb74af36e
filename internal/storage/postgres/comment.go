package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"conduit/internal/domain"
)

type commentRow struct {
	ID        int64     `db:"id"`
	ArticleID int64     `db:"article_id"`
	AuthorID  int64     `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r commentRow) toDomain() domain.Comment {
	return domain.Comment(r)
}

type CommentStore struct {
	db *sqlx.DB
}

func NewCommentStore(db *sqlx.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (article_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		comment.ArticleID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	return translate(err)
}

// ListByArticle returns the article's comments oldest first.
func (s *CommentStore) ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	query := `
		SELECT id, article_id, author_id, body, created_at, updated_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at, id`

	var rows []commentRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, articleID); err != nil {
		return nil, translate(err)
	}

	comments := make([]domain.Comment, len(rows))
	for i, r := range rows {
		comments[i] = r.toDomain()
	}
	return comments, nil
}

// Delete removes comment id under the article slug. Two actors may delete:
// the article's author moderating the thread, and the comment's author
// retracting their own comment. Anyone else, or a comment under another
// article, yields domain.ErrNotFound.
func (s *CommentStore) Delete(ctx context.Context, id int64, slug string, actorID int64) error {
	query := `
		DELETE FROM comments c
		USING articles a
		WHERE c.id = $1
			AND c.article_id = a.id
			AND a.slug = $2
			AND (c.author_id = $3 OR a.author_id = $3)`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, slug, actorID)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
