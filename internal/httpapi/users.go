package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"conduit/internal/domain"
)

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	user, err := s.svc.Users.Register(c.Request().Context(), domain.Registration{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: req.User.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	user, err := s.svc.Users.Login(c.Request().Context(), req.User.Email, req.User.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) currentUser(c echo.Context) error {
	user, err := s.svc.Users.Current(c.Request().Context(), viewerOf(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) updateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	user, err := s.svc.Users.Update(c.Request().Context(), viewerOf(c), domain.UserPatch{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: req.User.Password,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}
