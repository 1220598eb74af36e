package service

import (
	"context"

	"go.uber.org/mock/gomock"

	"conduit/internal/domain"
)

func (s *ServiceTestSuite) TestAddComment() {
	a := s.article(42, "my-first-post", alice, 0)

	s.articles.EXPECT().GetBySlug(s.ctx, "my-first-post").Return(&a, nil)
	s.comments.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *domain.Comment) error {
			s.Equal(int64(42), c.ArticleID)
			s.Equal(bob.ID, c.AuthorID)
			c.ID = 7
			return nil
		})
	s.users.EXPECT().GetByID(s.ctx, bob.ID).Return(&bob, nil)

	view, err := s.commentSvc.Add(s.ctx, viewerOf(bob), "my-first-post", "nice")
	s.Require().NoError(err)
	s.Equal(int64(7), view.ID)
	s.Equal("bob", view.Author.Username)
	s.False(view.Author.Following)
}

func (s *ServiceTestSuite) TestAddComment_BlankBody() {
	_, err := s.commentSvc.Add(s.ctx, viewerOf(bob), "my-first-post", "   ")

	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "body")
}

func (s *ServiceTestSuite) TestDeleteComment_Guarded() {
	s.comments.EXPECT().Delete(s.ctx, int64(7), "my-first-post", carol.ID).Return(domain.ErrNotFound)

	s.ErrorIs(s.commentSvc.Delete(s.ctx, viewerOf(carol), "my-first-post", 7), domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestDeleteComment_Anonymous() {
	s.ErrorIs(s.commentSvc.Delete(s.ctx, domain.Anonymous(), "my-first-post", 7), domain.ErrUnauthorized)
}
