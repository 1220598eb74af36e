package service

import (
	"go.uber.org/mock/gomock"

	"conduit/internal/domain"
)

func (s *ServiceTestSuite) expectArticleView(article domain.Article, viewer domain.User, favorited bool) {
	s.articles.EXPECT().GetBySlug(s.ctx, article.Slug).Return(&article, nil)
	s.users.EXPECT().GetByIDs(s.ctx, []int64{article.AuthorID}).Return(map[int64]domain.User{alice.ID: alice}, nil)
	s.favorites.EXPECT().FavoritedAmong(s.ctx, viewer.ID, []int64{article.ID}).Return(map[int64]bool{article.ID: favorited}, nil)
	s.follows.EXPECT().FollowedAmong(s.ctx, viewer.ID, []int64{article.AuthorID}).Return(map[int64]bool{}, nil)
}

func (s *ServiceTestSuite) TestFavorite_FirstTimePublishes() {
	before := s.article(42, "my-first-post", alice, 0)
	after := s.article(42, "my-first-post", alice, 1)

	s.articles.EXPECT().GetBySlug(s.ctx, "my-first-post").Return(&before, nil)
	s.favorites.EXPECT().Add(s.ctx, bob.ID, int64(42)).Return(true, nil)
	s.expectArticleView(after, bob, true)
	s.publisher.EXPECT().Publish(s.ctx, domain.ArticleEvent{
		Action:    domain.ActionArticleFavorited,
		ArticleID: 42,
		Slug:      "my-first-post",
		ActorID:   bob.ID,
		Timestamp: s.fixedNow,
	}).Return(nil)

	view, err := s.articleSvc.Favorite(s.ctx, viewerOf(bob), "my-first-post")
	s.Require().NoError(err)
	s.True(view.Favorited)
	s.Equal(1, view.FavoritesCount)
}

func (s *ServiceTestSuite) TestFavorite_RepeatIsSilentNoop() {
	a := s.article(42, "my-first-post", alice, 1)

	s.articles.EXPECT().GetBySlug(s.ctx, "my-first-post").Return(&a, nil)
	s.favorites.EXPECT().Add(s.ctx, bob.ID, int64(42)).Return(false, nil)
	s.expectArticleView(a, bob, true)

	view, err := s.articleSvc.Favorite(s.ctx, viewerOf(bob), "my-first-post")
	s.Require().NoError(err)
	s.True(view.Favorited)
	s.Equal(1, view.FavoritesCount)
}

func (s *ServiceTestSuite) TestUnfavorite_AbsentEdge() {
	a := s.article(42, "my-first-post", alice, 0)

	s.articles.EXPECT().GetBySlug(s.ctx, "my-first-post").Return(&a, nil)
	s.favorites.EXPECT().Remove(s.ctx, carol.ID, int64(42)).Return(false, nil)
	s.expectArticleView(a, carol, false)

	view, err := s.articleSvc.Unfavorite(s.ctx, viewerOf(carol), "my-first-post")
	s.Require().NoError(err)
	s.False(view.Favorited)
	s.Equal(0, view.FavoritesCount)
}

func (s *ServiceTestSuite) TestFavorite_UnknownSlug() {
	s.articles.EXPECT().GetBySlug(s.ctx, "nope").Return(nil, domain.ErrNotFound)

	_, err := s.articleSvc.Favorite(s.ctx, viewerOf(bob), "nope")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestFavorite_Anonymous() {
	s.articles.EXPECT().GetBySlug(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.articleSvc.Favorite(s.ctx, domain.Anonymous(), "my-first-post")
	s.ErrorIs(err, domain.ErrUnauthorized)
}
