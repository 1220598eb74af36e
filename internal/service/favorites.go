package service

import (
	"context"

	"conduit/internal/domain"
)

// Favorite marks the article at slug as a favorite of the viewer. Repeating
// it leaves the count unchanged.
func (s *ArticleService) Favorite(ctx context.Context, viewer domain.Viewer, slug string) (*domain.ArticleView, error) {
	return s.toggleFavorite(ctx, viewer, slug, true)
}

// Unfavorite clears the viewer's favorite. It succeeds when no favorite exists.
func (s *ArticleService) Unfavorite(ctx context.Context, viewer domain.Viewer, slug string) (*domain.ArticleView, error) {
	return s.toggleFavorite(ctx, viewer, slug, false)
}

func (s *ArticleService) toggleFavorite(ctx context.Context, viewer domain.Viewer, slug string, on bool) (*domain.ArticleView, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		view    *domain.ArticleView
		changed bool
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		article, err := s.articles.GetBySlug(txCtx, slug)
		if err != nil {
			return err
		}

		if on {
			changed, err = s.favorites.Add(txCtx, identity.UserID, article.ID)
		} else {
			changed, err = s.favorites.Remove(txCtx, identity.UserID, article.ID)
		}
		if err != nil {
			return err
		}

		view, err = s.views.Article(txCtx, viewer, slug)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		action := domain.ActionArticleFavorited
		if !on {
			action = domain.ActionArticleUnfavorited
		}
		s.publish(ctx, action, &view.Article, identity.UserID)
	}
	return view, nil
}
