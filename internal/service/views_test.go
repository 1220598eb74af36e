package service

import (
	"errors"

	"go.uber.org/mock/gomock"

	"conduit/internal/domain"
)

func (s *ServiceTestSuite) TestListArticles_AnonymousSkipsViewerLookups() {
	a1 := s.article(10, "one", alice, 2)
	a2 := s.article(11, "two", bob, 0)
	a3 := s.article(12, "three", alice, 1)

	s.articles.EXPECT().List(s.ctx, domain.ArticleFilter{Limit: domain.DefaultListLimit}).
		Return([]domain.Article{a1, a2, a3}, 7, nil)
	s.users.EXPECT().GetByIDs(s.ctx, []int64{alice.ID, bob.ID}).
		Return(map[int64]domain.User{alice.ID: alice, bob.ID: bob}, nil)

	list, err := s.views.ListArticles(s.ctx, domain.Anonymous(), domain.ArticleFilter{})
	s.Require().NoError(err)

	s.Equal(7, list.Count)
	s.Require().Len(list.Articles, 3)
	s.Equal([]string{"one", "two", "three"}, []string{list.Articles[0].Slug, list.Articles[1].Slug, list.Articles[2].Slug})
	for _, v := range list.Articles {
		s.False(v.Favorited)
		s.False(v.Author.Following)
	}
	s.Equal("bob", list.Articles[1].Author.Username)
}

func (s *ServiceTestSuite) TestListArticles_AuthenticatedUsesBatchLookups() {
	a1 := s.article(10, "one", alice, 1)
	a2 := s.article(11, "two", carol, 0)
	filter := domain.ArticleFilter{Tag: "go", Limit: 5}

	s.articles.EXPECT().List(s.ctx, filter).Return([]domain.Article{a1, a2}, 2, nil)
	s.users.EXPECT().GetByIDs(s.ctx, []int64{alice.ID, carol.ID}).
		Return(map[int64]domain.User{alice.ID: alice, carol.ID: carol}, nil)
	s.favorites.EXPECT().FavoritedAmong(s.ctx, bob.ID, []int64{10, 11}).
		Return(map[int64]bool{10: true}, nil)
	s.follows.EXPECT().FollowedAmong(s.ctx, bob.ID, []int64{alice.ID, carol.ID}).
		Return(map[int64]bool{carol.ID: true}, nil)

	list, err := s.views.ListArticles(s.ctx, viewerOf(bob), filter)
	s.Require().NoError(err)

	s.True(list.Articles[0].Favorited)
	s.False(list.Articles[0].Author.Following)
	s.False(list.Articles[1].Favorited)
	s.True(list.Articles[1].Author.Following)
}

func (s *ServiceTestSuite) TestListArticles_EmptyPage() {
	s.articles.EXPECT().List(s.ctx, gomock.Any()).Return(nil, 4, nil)

	list, err := s.views.ListArticles(s.ctx, viewerOf(bob), domain.ArticleFilter{Offset: 100})
	s.Require().NoError(err)
	s.Equal(4, list.Count)
	s.NotNil(list.Articles)
	s.Empty(list.Articles)
}

func (s *ServiceTestSuite) TestListArticles_MissingAuthorIsUnavailable() {
	s.articles.EXPECT().List(s.ctx, gomock.Any()).Return([]domain.Article{s.article(1, "x", alice, 0)}, 1, nil)
	s.users.EXPECT().GetByIDs(s.ctx, gomock.Any()).Return(map[int64]domain.User{}, nil)

	_, err := s.views.ListArticles(s.ctx, domain.Anonymous(), domain.ArticleFilter{})
	s.ErrorIs(err, domain.ErrUnavailable)
}

func (s *ServiceTestSuite) TestListArticles_StoreFailure() {
	s.articles.EXPECT().List(s.ctx, gomock.Any()).Return(nil, 0, domain.Unavailable(errors.New("conn refused")))

	_, err := s.views.ListArticles(s.ctx, domain.Anonymous(), domain.ArticleFilter{})
	s.ErrorIs(err, domain.ErrUnavailable)
}

func (s *ServiceTestSuite) TestFeed_RequiresAuthentication() {
	_, err := s.views.Feed(s.ctx, domain.Anonymous(), 20, 0)
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *ServiceTestSuite) TestFeed_MarksAuthorsFollowed() {
	a := s.article(20, "from-alice", alice, 0)

	s.articles.EXPECT().Feed(s.ctx, carol.ID, domain.MaxListLimit, 0).Return([]domain.Article{a}, 1, nil)
	s.users.EXPECT().GetByIDs(s.ctx, []int64{alice.ID}).Return(map[int64]domain.User{alice.ID: alice}, nil)
	s.favorites.EXPECT().FavoritedAmong(s.ctx, carol.ID, []int64{20}).Return(map[int64]bool{}, nil)
	s.follows.EXPECT().FollowedAmong(s.ctx, carol.ID, []int64{alice.ID}).Return(map[int64]bool{alice.ID: true}, nil)

	list, err := s.views.Feed(s.ctx, viewerOf(carol), 500, -3)
	s.Require().NoError(err)
	s.Equal(1, list.Count)
	s.True(list.Articles[0].Author.Following)
}

func (s *ServiceTestSuite) TestArticle_NotFound() {
	s.articles.EXPECT().GetBySlug(s.ctx, "missing").Return(nil, domain.ErrNotFound)

	_, err := s.views.Article(s.ctx, domain.Anonymous(), "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestProfile_FollowingRelativeToViewer() {
	s.users.EXPECT().GetByUsername(s.ctx, "alice").Return(&alice, nil).Times(2)
	s.follows.EXPECT().IsFollowing(s.ctx, bob.ID, alice.ID).Return(true, nil)

	p, err := s.views.Profile(s.ctx, viewerOf(bob), "alice")
	s.Require().NoError(err)
	s.True(p.Following)

	p, err = s.views.Profile(s.ctx, domain.Anonymous(), "alice")
	s.Require().NoError(err)
	s.False(p.Following)
}

func (s *ServiceTestSuite) TestComments_AssemblesAuthors() {
	a := s.article(30, "post", alice, 0)
	comments := []domain.Comment{
		{ID: 1, ArticleID: 30, AuthorID: bob.ID, Body: "first"},
		{ID: 2, ArticleID: 30, AuthorID: carol.ID, Body: "second"},
		{ID: 3, ArticleID: 30, AuthorID: bob.ID, Body: "third"},
	}

	s.articles.EXPECT().GetBySlug(s.ctx, "post").Return(&a, nil)
	s.comments.EXPECT().ListByArticle(s.ctx, a.ID).Return(comments, nil)
	s.users.EXPECT().GetByIDs(s.ctx, []int64{bob.ID, carol.ID}).
		Return(map[int64]domain.User{bob.ID: bob, carol.ID: carol}, nil)
	s.follows.EXPECT().FollowedAmong(s.ctx, alice.ID, []int64{bob.ID, carol.ID}).
		Return(map[int64]bool{bob.ID: true}, nil)

	views, err := s.commentSvc.List(s.ctx, viewerOf(alice), "post")
	s.Require().NoError(err)
	s.Require().Len(views, 3)
	s.Equal("first", views[0].Body)
	s.True(views[0].Author.Following)
	s.False(views[1].Author.Following)
	s.Equal("bob", views[2].Author.Username)
}
