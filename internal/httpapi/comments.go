package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) listComments(c echo.Context) error {
	views, err := s.svc.Comments.List(c.Request().Context(), viewerOf(c), c.Param("slug"))
	if err != nil {
		return err
	}

	out := commentListResponse{Comments: make([]commentJSON, 0, len(views))}
	for _, v := range views {
		out.Comments = append(out.Comments, newComment(v))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) addComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	view, err := s.svc.Comments.Add(c.Request().Context(), viewerOf(c), c.Param("slug"), req.Comment.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, commentResponse{Comment: newComment(*view)})
}

func (s *Server) deleteComment(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return err
	}

	if err := s.svc.Comments.Delete(c.Request().Context(), viewerOf(c), c.Param("slug"), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
