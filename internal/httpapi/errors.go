package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"conduit/internal/domain"
)

// errorBody is the RealWorld error envelope: {"errors": {"field": ["message"]}}.
type errorBody struct {
	Errors map[string][]string `json:"errors"`
}

func singleError(field, msg string) errorBody {
	return errorBody{Errors: map[string][]string{field: {msg}}}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, body := s.classify(err)

	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", code,
			"error", cause(err),
		)
	} else {
		s.logger.Debug("request rejected", "path", c.Path(), "status", code, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		s.logger.Error("failed to write error response", "error", err)
	}
}

func (s *Server) classify(err error) (int, errorBody) {
	var (
		conflict   *domain.ConflictError
		validation *domain.ValidationError
		binding    *echo.BindingError
		httpErr    *echo.HTTPError
	)

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, singleError("token", "is missing or invalid")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, singleError("resource", "not found")
	case errors.As(err, &conflict):
		return http.StatusConflict, singleError(conflict.Field, "has already been taken")
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, errorBody{Errors: validation.Fields}
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, singleError("service", "is temporarily unavailable")
	case errors.As(err, &binding):
		return http.StatusUnprocessableEntity, singleError(binding.Field, "is invalid")
	case errors.As(err, &httpErr):
		if httpErr.Code == http.StatusServiceUnavailable {
			return httpErr.Code, singleError("service", "is temporarily unavailable")
		}
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		return httpErr.Code, singleError("body", msg)
	default:
		return http.StatusInternalServerError, singleError("body", "internal server error")
	}
}

func cause(err error) error {
	var unavailable *domain.UnavailableError
	if errors.As(err, &unavailable) && unavailable.Cause() != nil {
		return unavailable.Cause()
	}
	return err
}
