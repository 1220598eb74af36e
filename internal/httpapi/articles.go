package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"conduit/internal/domain"
)

func (s *Server) listArticles(c echo.Context) error {
	filter := domain.ArticleFilter{
		Tag:         c.QueryParam("tag"),
		Author:      c.QueryParam("author"),
		FavoritedBy: c.QueryParam("favorited"),
	}
	if err := echo.QueryParamsBinder(c).
		Int("limit", &filter.Limit).
		Int("offset", &filter.Offset).
		BindError(); err != nil {
		return err
	}

	list, err := s.svc.Reader.ListArticles(c.Request().Context(), viewerOf(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newArticleList(list))
}

func (s *Server) feed(c echo.Context) error {
	var limit, offset int
	if err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError(); err != nil {
		return err
	}

	list, err := s.svc.Reader.Feed(c.Request().Context(), viewerOf(c), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newArticleList(list))
}

func (s *Server) getArticle(c echo.Context) error {
	view, err := s.svc.Reader.Article(c.Request().Context(), viewerOf(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleResponse{Article: newArticle(*view)})
}

func (s *Server) createArticle(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	view, err := s.svc.Writer.Create(c.Request().Context(), viewerOf(c), domain.ArticleInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, articleResponse{Article: newArticle(*view)})
}

func (s *Server) updateArticle(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	view, err := s.svc.Writer.Update(c.Request().Context(), viewerOf(c), c.Param("slug"), domain.ArticlePatch{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleResponse{Article: newArticle(*view)})
}

func (s *Server) deleteArticle(c echo.Context) error {
	if err := s.svc.Writer.Delete(c.Request().Context(), viewerOf(c), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) favorite(c echo.Context) error {
	view, err := s.svc.Writer.Favorite(c.Request().Context(), viewerOf(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleResponse{Article: newArticle(*view)})
}

func (s *Server) unfavorite(c echo.Context) error {
	view, err := s.svc.Writer.Unfavorite(c.Request().Context(), viewerOf(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleResponse{Article: newArticle(*view)})
}

func (s *Server) tags(c echo.Context) error {
	tags, err := s.svc.Writer.Tags(c.Request().Context())
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, tagsResponse{Tags: tags})
}
