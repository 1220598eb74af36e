package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"conduit/internal/domain"
)

func (s *Server) getProfile(c echo.Context) error {
	return s.profile(c, s.svc.Profiles.Get)
}

func (s *Server) follow(c echo.Context) error {
	return s.profile(c, s.svc.Profiles.Follow)
}

func (s *Server) unfollow(c echo.Context) error {
	return s.profile(c, s.svc.Profiles.Unfollow)
}

func (s *Server) profile(c echo.Context, op func(context.Context, domain.Viewer, string) (domain.Profile, error)) error {
	p, err := op(c.Request().Context(), viewerOf(c), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: newProfile(p)})
}
