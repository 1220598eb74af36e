package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"conduit/internal/domain"
)

func (s *ServiceTestSuite) TestCreate_SlugifiesAndPublishes() {
	input := domain.ArticleInput{
		Title:       "My First Post",
		Description: "d",
		Body:        "b",
		TagList:     []string{"go", " go ", "sql"},
	}

	s.articles.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Article) error {
			s.Equal("my-first-post", a.Slug)
			s.Equal([]string{"go", "sql"}, a.TagList)
			s.Equal(alice.ID, a.AuthorID)
			a.ID = 42
			return nil
		})
	s.users.EXPECT().GetByIDs(s.ctx, []int64{alice.ID}).Return(map[int64]domain.User{alice.ID: alice}, nil)
	s.favorites.EXPECT().FavoritedAmong(s.ctx, alice.ID, []int64{42}).Return(map[int64]bool{}, nil)
	s.follows.EXPECT().FollowedAmong(s.ctx, alice.ID, []int64{alice.ID}).Return(map[int64]bool{}, nil)
	s.publisher.EXPECT().Publish(s.ctx, domain.ArticleEvent{
		Action:    domain.ActionArticleCreated,
		ArticleID: 42,
		Slug:      "my-first-post",
		ActorID:   alice.ID,
		Timestamp: s.fixedNow,
	}).Return(nil)

	view, err := s.articleSvc.Create(s.ctx, viewerOf(alice), input)
	s.Require().NoError(err)
	s.Equal("my-first-post", view.Slug)
	s.Equal(0, view.FavoritesCount)
	s.False(view.Favorited)
	s.Equal("alice", view.Author.Username)
}

func (s *ServiceTestSuite) TestCreate_SlugConflictPublishesNothing() {
	s.articles.EXPECT().Create(s.ctx, gomock.Any()).Return(&domain.ConflictError{Field: "slug"})

	_, err := s.articleSvc.Create(s.ctx, viewerOf(alice), domain.ArticleInput{Title: "Dup", Description: "d", Body: "b"})

	var conflict *domain.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal("slug", conflict.Field)
}

func (s *ServiceTestSuite) TestCreate_Validation() {
	_, err := s.articleSvc.Create(s.ctx, viewerOf(alice), domain.ArticleInput{})

	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "title")
}

func (s *ServiceTestSuite) TestCreate_Anonymous() {
	_, err := s.articleSvc.Create(s.ctx, domain.Anonymous(), domain.ArticleInput{Title: "t", Description: "d", Body: "b"})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *ServiceTestSuite) TestUpdate_NonOwnerIsNotFound() {
	title := "Hijacked"
	s.articles.EXPECT().Update(s.ctx, "my-first-post", bob.ID, gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotFound)

	_, err := s.articleSvc.Update(s.ctx, viewerOf(bob), "my-first-post", domain.ArticlePatch{Title: &title})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestUpdate_TitleMovesSlug() {
	title := "Renamed Post"
	updated := s.article(42, "renamed-post", alice, 3)

	s.articles.EXPECT().Update(s.ctx, "my-first-post", alice.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ int64, _ domain.ArticlePatch, newSlug *string) (*domain.Article, error) {
			s.Require().NotNil(newSlug)
			s.Equal("renamed-post", *newSlug)
			return &updated, nil
		})
	s.users.EXPECT().GetByIDs(s.ctx, gomock.Any()).Return(map[int64]domain.User{alice.ID: alice}, nil)
	s.favorites.EXPECT().FavoritedAmong(s.ctx, alice.ID, gomock.Any()).Return(map[int64]bool{}, nil)
	s.follows.EXPECT().FollowedAmong(s.ctx, alice.ID, gomock.Any()).Return(map[int64]bool{}, nil)
	s.publisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(nil)

	view, err := s.articleSvc.Update(s.ctx, viewerOf(alice), "my-first-post", domain.ArticlePatch{Title: &title})
	s.Require().NoError(err)
	s.Equal("renamed-post", view.Slug)
	s.Equal(3, view.FavoritesCount)
}

func (s *ServiceTestSuite) TestDelete_PublishFailureIsNotReturned() {
	s.articles.EXPECT().Delete(s.ctx, "my-first-post", alice.ID).Return(int64(42), nil)
	s.publisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(errors.New("broker down"))

	s.NoError(s.articleSvc.Delete(s.ctx, viewerOf(alice), "my-first-post"))
}

func (s *ServiceTestSuite) TestDelete_NonOwner() {
	s.articles.EXPECT().Delete(s.ctx, "my-first-post", bob.ID).Return(int64(0), domain.ErrNotFound)

	s.ErrorIs(s.articleSvc.Delete(s.ctx, viewerOf(bob), "my-first-post"), domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestTags() {
	s.tags.EXPECT().List(s.ctx).Return([]string{"go", "sql"}, nil)

	tags, err := s.articleSvc.Tags(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"go", "sql"}, tags)
}
