package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the home page for anonymous and signed-in users.
type HomeHandler struct{}

// NewHomeHandler is the constructor for HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the landing page. The template reads the identity itself.
func (h *HomeHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", map[string]any{})
}
