package service

import (
	"context"
	"fmt"

	"conduit/internal/domain"
)

// Views assembles viewer-relative projections. Every operation issues a fixed
// number of store queries regardless of how many rows it returns: the page
// itself, then one batch lookup each for authors, favorites and follows.
type Views struct {
	users     UserStore
	articles  ArticleStore
	comments  CommentStore
	follows   FollowStore
	favorites FavoriteStore
}

func NewViews(
	users UserStore,
	articles ArticleStore,
	comments CommentStore,
	follows FollowStore,
	favorites FavoriteStore,
) *Views {
	return &Views{
		users:     users,
		articles:  articles,
		comments:  comments,
		follows:   follows,
		favorites: favorites,
	}
}

// Profile returns username's profile; Following is false for anonymous viewers.
func (v *Views) Profile(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error) {
	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}

	following := false
	if id := viewer.UserID(); id != nil {
		following, err = v.follows.IsFollowing(ctx, *id, user.ID)
		if err != nil {
			return domain.Profile{}, err
		}
	}

	return user.Profile(following), nil
}

func (v *Views) ListArticles(ctx context.Context, viewer domain.Viewer, filter domain.ArticleFilter) (*domain.ArticleList, error) {
	articles, total, err := v.articles.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return v.list(ctx, viewer, articles, total)
}

// Feed lists articles by authors the viewer follows. Anonymous viewers have no feed.
func (v *Views) Feed(ctx context.Context, viewer domain.Viewer, limit, offset int) (*domain.ArticleList, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	limit, offset = domain.NormalizePage(limit, offset)
	articles, total, err := v.articles.Feed(ctx, identity.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return v.list(ctx, viewer, articles, total)
}

func (v *Views) list(ctx context.Context, viewer domain.Viewer, articles []domain.Article, total int) (*domain.ArticleList, error) {
	views, err := v.Articles(ctx, viewer, articles)
	if err != nil {
		return nil, err
	}
	return &domain.ArticleList{Articles: views, Count: total}, nil
}

func (v *Views) Article(ctx context.Context, viewer domain.Viewer, slug string) (*domain.ArticleView, error) {
	article, err := v.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	views, err := v.Articles(ctx, viewer, []domain.Article{*article})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Articles decorates articles with their author profiles and the viewer's
// favorite and follow state, preserving order.
func (v *Views) Articles(ctx context.Context, viewer domain.Viewer, articles []domain.Article) ([]domain.ArticleView, error) {
	views := make([]domain.ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	articleIDs := make([]int64, len(articles))
	authorIDs := make([]int64, 0, len(articles))
	seen := make(map[int64]struct{}, len(articles))
	for i, a := range articles {
		articleIDs[i] = a.ID
		if _, ok := seen[a.AuthorID]; !ok {
			seen[a.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	authors, err := v.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	favorited := map[int64]bool{}
	following := map[int64]bool{}
	if id := viewer.UserID(); id != nil {
		favorited, err = v.favorites.FavoritedAmong(ctx, *id, articleIDs)
		if err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		following, err = v.follows.FollowedAmong(ctx, *id, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("load follows: %w", err)
		}
	}

	for _, a := range articles {
		author, ok := authors[a.AuthorID]
		if !ok {
			return nil, domain.Unavailable(fmt.Errorf("author %d of article %q missing", a.AuthorID, a.Slug))
		}
		views = append(views, domain.ArticleView{
			Article:   a,
			Favorited: favorited[a.ID],
			Author:    author.Profile(following[a.AuthorID]),
		})
	}
	return views, nil
}

// Comments lists the comments of the article at slug with each author's
// profile relative to the viewer.
func (v *Views) Comments(ctx context.Context, viewer domain.Viewer, slug string) ([]domain.CommentView, error) {
	article, err := v.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := v.comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return v.commentViews(ctx, viewer, comments)
}

func (v *Views) commentViews(ctx context.Context, viewer domain.Viewer, comments []domain.Comment) ([]domain.CommentView, error) {
	views := make([]domain.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	authors, err := v.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	following := map[int64]bool{}
	if id := viewer.UserID(); id != nil {
		following, err = v.follows.FollowedAmong(ctx, *id, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("load follows: %w", err)
		}
	}

	for _, c := range comments {
		author, ok := authors[c.AuthorID]
		if !ok {
			return nil, domain.Unavailable(fmt.Errorf("author %d of comment %d missing", c.AuthorID, c.ID))
		}
		views = append(views, domain.CommentView{
			Comment: c,
			Author:  author.Profile(following[c.AuthorID]),
		})
	}
	return views, nil
}
