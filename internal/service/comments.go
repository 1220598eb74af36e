package service

import (
	"context"

	"conduit/internal/domain"
)

type CommentService struct {
	articles  ArticleStore
	comments  CommentStore
	users     UserStore
	views     *Views
	txManager TransactionManager
}

func NewCommentService(
	articles ArticleStore,
	comments CommentStore,
	users UserStore,
	views *Views,
	txManager TransactionManager,
) *CommentService {
	return &CommentService{
		articles:  articles,
		comments:  comments,
		users:     users,
		views:     views,
		txManager: txManager,
	}
}

func (s *CommentService) List(ctx context.Context, viewer domain.Viewer, slug string) ([]domain.CommentView, error) {
	return s.views.Comments(ctx, viewer, slug)
}

func (s *CommentService) Add(ctx context.Context, viewer domain.Viewer, slug, body string) (*domain.CommentView, error) {
	identity, ok := viewer.Identity()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := domain.ValidateCommentBody(body); err != nil {
		return nil, err
	}

	var view *domain.CommentView
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		article, err := s.articles.GetBySlug(txCtx, slug)
		if err != nil {
			return err
		}

		comment := domain.Comment{
			ArticleID: article.ID,
			AuthorID:  identity.UserID,
			Body:      body,
		}
		if err := s.comments.Create(txCtx, &comment); err != nil {
			return err
		}

		author, err := s.users.GetByID(txCtx, identity.UserID)
		if err != nil {
			return err
		}

		// Nobody follows themselves.
		view = &domain.CommentView{Comment: comment, Author: author.Profile(false)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Delete removes a comment on the article at slug. Only the comment's author
// or the article's author may delete it; anyone else sees NotFound.
func (s *CommentService) Delete(ctx context.Context, viewer domain.Viewer, slug string, id int64) error {
	identity, ok := viewer.Identity()
	if !ok {
		return domain.ErrUnauthorized
	}
	return s.comments.Delete(ctx, id, slug, identity.UserID)
}
