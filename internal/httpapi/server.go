package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"conduit/internal/auth"
	"conduit/internal/domain"
)

type Users interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthUser, error)
	Login(ctx context.Context, email, password string) (*domain.AuthUser, error)
	Current(ctx context.Context, viewer domain.Viewer) (*domain.AuthUser, error)
	Update(ctx context.Context, viewer domain.Viewer, patch domain.UserPatch) (*domain.AuthUser, error)
}

type Profiles interface {
	Get(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error)
	Follow(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error)
	Unfollow(ctx context.Context, viewer domain.Viewer, username string) (domain.Profile, error)
}

type ArticleReader interface {
	ListArticles(ctx context.Context, viewer domain.Viewer, filter domain.ArticleFilter) (*domain.ArticleList, error)
	Feed(ctx context.Context, viewer domain.Viewer, limit, offset int) (*domain.ArticleList, error)
	Article(ctx context.Context, viewer domain.Viewer, slug string) (*domain.ArticleView, error)
}

type ArticleWriter interface {
	Create(ctx context.Context, viewer domain.Viewer, input domain.ArticleInput) (*domain.ArticleView, error)
	Update(ctx context.Context, viewer domain.Viewer, slug string, patch domain.ArticlePatch) (*domain.ArticleView, error)
	Delete(ctx context.Context, viewer domain.Viewer, slug string) error
	Favorite(ctx context.Context, viewer domain.Viewer, slug string) (*domain.ArticleView, error)
	Unfavorite(ctx context.Context, viewer domain.Viewer, slug string) (*domain.ArticleView, error)
	Tags(ctx context.Context) ([]string, error)
}

type Comments interface {
	List(ctx context.Context, viewer domain.Viewer, slug string) ([]domain.CommentView, error)
	Add(ctx context.Context, viewer domain.Viewer, slug, body string) (*domain.CommentView, error)
	Delete(ctx context.Context, viewer domain.Viewer, slug string, id int64) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Users    Users
	Profiles Profiles
	Reader   ArticleReader
	Writer   ArticleWriter
	Comments Comments
}

type Config struct {
	RequestTimeout time.Duration
}

type Server struct {
	echo   *echo.Echo
	svc    Services
	guard  *auth.Guard
	db     Pinger
	logger *slog.Logger
}

func New(svc Services, guard *auth.Guard, db Pinger, registry *prometheus.Registry, cfg Config, logger *slog.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		svc:    svc,
		guard:  guard,
		db:     db,
		logger: logger.With("component", "http"),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(newMetrics(registry).middleware)
	e.Use(requestLogger(s.logger))

	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(echomiddleware.ContextTimeout(cfg.RequestTimeout))
	}
	s.routes(api)

	return s
}

func (s *Server) routes(api *echo.Group) {
	api.POST("/users", s.register)
	api.POST("/users/login", s.login)
	api.GET("/user", s.currentUser, s.requireAuth)
	api.PUT("/user", s.updateUser, s.requireAuth)

	api.GET("/profiles/:username", s.getProfile, s.optionalAuth)
	api.POST("/profiles/:username/follow", s.follow, s.requireAuth)
	api.DELETE("/profiles/:username/follow", s.unfollow, s.requireAuth)

	api.GET("/articles", s.listArticles, s.optionalAuth)
	api.GET("/articles/feed", s.feed, s.requireAuth)
	api.GET("/articles/:slug", s.getArticle, s.optionalAuth)
	api.POST("/articles", s.createArticle, s.requireAuth)
	api.PUT("/articles/:slug", s.updateArticle, s.requireAuth)
	api.DELETE("/articles/:slug", s.deleteArticle, s.requireAuth)

	api.GET("/articles/:slug/comments", s.listComments, s.optionalAuth)
	api.POST("/articles/:slug/comments", s.addComment, s.requireAuth)
	api.DELETE("/articles/:slug/comments/:id", s.deleteComment, s.requireAuth)

	api.POST("/articles/:slug/favorite", s.favorite, s.requireAuth)
	api.DELETE("/articles/:slug/favorite", s.unfavorite, s.requireAuth)

	api.GET("/tags", s.tags)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
