package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"conduit/internal/domain"
)

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error)
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error)
}

type ArticleStore interface {
	Create(ctx context.Context, article *domain.Article) error
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, int, error)
	Feed(ctx context.Context, followerID int64, limit, offset int) ([]domain.Article, int, error)
	Update(ctx context.Context, slug string, authorID int64, patch domain.ArticlePatch, newSlug *string) (*domain.Article, error)
	Delete(ctx context.Context, slug string, authorID int64) (int64, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error)
	Delete(ctx context.Context, id int64, slug string, actorID int64) error
}

type FollowStore interface {
	Add(ctx context.Context, followerID, followedID int64) (bool, error)
	Remove(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	FollowedAmong(ctx context.Context, followerID int64, userIDs []int64) (map[int64]bool, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, userID, articleID int64) (bool, error)
	Remove(ctx context.Context, userID, articleID int64) (bool, error)
	FavoritedAmong(ctx context.Context, userID int64, articleIDs []int64) (map[int64]bool, error)
	Reconcile(ctx context.Context) (int64, error)
}

type TagStore interface {
	List(ctx context.Context) ([]string, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.ArticleEvent) error
	Close() error
}

type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
