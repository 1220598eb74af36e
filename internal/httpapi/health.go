package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (s *Server) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "healthy", Database: "healthy"}
	code := http.StatusOK
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("database ping failed", "error", err)
		resp = healthResponse{Status: "degraded", Database: "unhealthy"}
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
