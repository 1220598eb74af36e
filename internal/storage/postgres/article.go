package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conduit/internal/domain"
)

const articleColumns = `a.id, a.slug, a.title, a.description, a.body, a.tag_list,
	a.author_id, a.favorites_count, a.created_at, a.updated_at`

type articleRow struct {
	ID             int64          `db:"id"`
	Slug           string         `db:"slug"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Body           string         `db:"body"`
	TagList        pq.StringArray `db:"tag_list"`
	AuthorID       int64          `db:"author_id"`
	FavoritesCount int            `db:"favorites_count"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r articleRow) toDomain() domain.Article {
	tags := []string(r.TagList)
	if tags == nil {
		tags = []string{}
	}
	return domain.Article{
		ID:             r.ID,
		Slug:           r.Slug,
		Title:          r.Title,
		Description:    r.Description,
		Body:           r.Body,
		TagList:        tags,
		AuthorID:       r.AuthorID,
		FavoritesCount: r.FavoritesCount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Create inserts article and fills in its generated columns.
func (s *ArticleStore) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (slug, title, description, body, tag_list, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, favorites_count, created_at, updated_at`

	tags := article.TagList
	if tags == nil {
		tags = []string{}
	}

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		article.Slug,
		article.Title,
		article.Description,
		article.Body,
		pq.Array(tags),
		article.AuthorID,
	).Scan(&article.ID, &article.FavoritesCount, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return translate(err)
	}

	article.TagList = tags
	return nil
}

func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a WHERE a.slug = $1`

	var row articleRow
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, slug); err != nil {
		return nil, translate(err)
	}

	article := row.toDomain()
	return &article, nil
}

// List scans articles matching filter. The tag, author and favoritedBy
// predicates are OR-combined. It returns the page and the total match count.
func (s *ArticleStore) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, int, error) {
	var a args
	var preds []string
	if filter.Tag != "" {
		preds = append(preds, a.add(filter.Tag)+" = ANY(a.tag_list)")
	}
	if filter.Author != "" {
		preds = append(preds, "a.author_id IN (SELECT id FROM users WHERE username = "+a.add(filter.Author)+")")
	}
	if filter.FavoritedBy != "" {
		preds = append(preds, `a.id IN (
			SELECT f.article_id FROM favorites f
			JOIN users u ON u.id = f.user_id
			WHERE u.username = `+a.add(filter.FavoritedBy)+`)`)
	}

	return s.page(ctx, and([]string{or(preds)}), a, filter.Limit, filter.Offset)
}

// Feed scans articles written by authors that followerID follows.
func (s *ArticleStore) Feed(ctx context.Context, followerID int64, limit, offset int) ([]domain.Article, int, error) {
	var a args
	where := and([]string{
		"a.author_id IN (SELECT followed_id FROM follows WHERE follower_id = " + a.add(followerID) + ")",
	})
	return s.page(ctx, where, a, limit, offset)
}

func (s *ArticleStore) page(ctx context.Context, where string, a args, limit, offset int) ([]domain.Article, int, error) {
	exec := GetExecutor(ctx, s.db)

	var total int
	countQuery := `SELECT COUNT(*) FROM articles a ` + where
	if err := sqlx.GetContext(ctx, exec, &total, countQuery, a...); err != nil {
		return nil, 0, translate(err)
	}
	if total == 0 {
		return []domain.Article{}, 0, nil
	}

	limitArg := a.add(limit)
	offsetArg := a.add(offset)
	query := fmt.Sprintf(`SELECT %s FROM articles a %s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT %s OFFSET %s`, articleColumns, where, limitArg, offsetArg)

	var rows []articleRow
	if err := sqlx.SelectContext(ctx, exec, &rows, query, a...); err != nil {
		return nil, 0, translate(err)
	}

	articles := make([]domain.Article, len(rows))
	for i, r := range rows {
		articles[i] = r.toDomain()
	}
	return articles, total, nil
}

// Update applies patch to the article identified by slug only when authorID
// wrote it. A foreign or missing article yields domain.ErrNotFound.
func (s *ArticleStore) Update(ctx context.Context, slug string, authorID int64, patch domain.ArticlePatch, newSlug *string) (*domain.Article, error) {
	query := `
		UPDATE articles a SET
			slug = COALESCE($1, a.slug),
			title = COALESCE($2, a.title),
			description = COALESCE($3, a.description),
			body = COALESCE($4, a.body),
			tag_list = COALESCE($5, a.tag_list),
			updated_at = now()
		WHERE a.slug = $6 AND a.author_id = $7
		RETURNING ` + articleColumns

	var tags interface{}
	if patch.TagList != nil {
		tags = pq.Array(domain.NormalizeTags(*patch.TagList))
	}

	var row articleRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query,
		newSlug,
		patch.Title,
		patch.Description,
		patch.Body,
		tags,
		slug,
		authorID,
	)
	if err != nil {
		return nil, translate(err)
	}

	article := row.toDomain()
	return &article, nil
}

// Delete removes the article identified by slug only when authorID wrote it.
func (s *ArticleStore) Delete(ctx context.Context, slug string, authorID int64) (int64, error) {
	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx,
		`DELETE FROM articles WHERE slug = $1 AND author_id = $2 RETURNING id`,
		slug, authorID,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}
