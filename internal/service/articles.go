package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conduit/internal/domain"
)

// ArticleService owns article, favorite and tag mutations. Each mutation runs
// in one transaction and returns the view assembled inside it.
type ArticleService struct {
	articles  ArticleStore
	favorites FavoriteStore
	tags      TagStore
	views     *Views
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewArticleService(
	articles ArticleStore,
	favorites FavoriteStore,
	tags TagStore,
	views *Views,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		favorites: favorites,
		tags:      tags,
		views:     views,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "articles"),
		now:       time.Now,
	}
}

func (s *ArticleService) Create(ctx context.Context, viewer domain.Viewer, input domain.ArticleInput) (*domain.ArticleView, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	article := domain.Article{
		Slug:        domain.Slugify(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     domain.NormalizeTags(input.TagList),
		AuthorID:    identity.UserID,
	}

	var view *domain.ArticleView
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.articles.Create(txCtx, &article); err != nil {
			return err
		}

		views, err := s.views.Articles(txCtx, viewer, []domain.Article{article})
		if err != nil {
			return err
		}
		view = &views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.ActionArticleCreated, &article, identity.UserID)
	return view, nil
}

// Update applies patch to the viewer's own article. A changed title moves the slug.
func (s *ArticleService) Update(ctx context.Context, viewer domain.Viewer, slug string, patch domain.ArticlePatch) (*domain.ArticleView, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.TagList != nil {
		tags := domain.NormalizeTags(*patch.TagList)
		patch.TagList = &tags
	}

	var newSlug *string
	if patch.Title != nil {
		next := domain.Slugify(*patch.Title)
		newSlug = &next
	}

	var (
		article *domain.Article
		view    *domain.ArticleView
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		article, err = s.articles.Update(txCtx, slug, identity.UserID, patch, newSlug)
		if err != nil {
			return err
		}

		views, err := s.views.Articles(txCtx, viewer, []domain.Article{*article})
		if err != nil {
			return err
		}
		view = &views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.ActionArticleUpdated, article, identity.UserID)
	return view, nil
}

// Delete removes the viewer's own article together with its comments and favorites.
func (s *ArticleService) Delete(ctx context.Context, viewer domain.Viewer, slug string) error {
	identity, ok := viewer.Identity()
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := s.articles.Delete(ctx, slug, identity.UserID)
	if err != nil {
		return err
	}

	s.publish(ctx, domain.ActionArticleDeleted, &domain.Article{ID: id, Slug: slug}, identity.UserID)
	return nil
}

// Tags returns every distinct tag in use, sorted.
func (s *ArticleService) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *ArticleService) publish(ctx context.Context, action domain.EventAction, article *domain.Article, actorID int64) {
	if s.publisher == nil {
		return
	}

	event := domain.ArticleEvent{
		Action:    action,
		ArticleID: article.ID,
		Slug:      article.Slug,
		ActorID:   actorID,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed",
			"action", action,
			"slug", article.Slug,
			"error", err,
		)
	}
}
