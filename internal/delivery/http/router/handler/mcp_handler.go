package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/usecase"
)

// MCPHandler serves the MCP configuration pages and JSON API.
type MCPHandler struct {
	uc usecase.MCPUsecase
}

// NewMCPHandler is the constructor for MCPHandler, injected by Fx.
func NewMCPHandler(uc usecase.MCPUsecase) *MCPHandler {
	return &MCPHandler{uc: uc}
}

type mcpForm struct {
	Name    string `form:"name" json:"name"`
	Context string `form:"context" json:"context"`
}

// Index renders the user's MCPs, newest first.
func (h *MCPHandler) Index(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	mcps, err := h.uc.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "mcps_index", map[string]any{"MCPs": mcps})
}

// New renders the creation form.
func (h *MCPHandler) New(c echo.Context) error {
	return c.Render(http.StatusOK, "mcps_new", map[string]any{})
}

// Show renders one MCP.
func (h *MCPHandler) Show(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	mcpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	mcp, err := h.uc.Get(c.Request().Context(), identity.UserID, mcpID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "mcps_show", map[string]any{"MCP": mcp})
}

// Create handles the creation form and returns to the index.
func (h *MCPHandler) Create(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var form mcpForm
	if err := c.Bind(&form); err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}

	if _, err := h.uc.Create(c.Request().Context(), identity.UserID, usecase.MCPInput(form)); err != nil {
		return renderResourceError(c, "mcps_new", err)
	}

	return c.Redirect(http.StatusFound, "/mcps")
}

// Destroy deletes an MCP from the browser, requiring the `_method=DELETE`
// tunnel field.
func (h *MCPHandler) Destroy(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if c.FormValue("_method") != "DELETE" {
		return echo.NewHTTPError(http.StatusMethodNotAllowed)
	}

	mcpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	if err := h.uc.Delete(c.Request().Context(), identity.UserID, mcpID); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/mcps")
}

// APIList returns the user's MCPs as JSON.
func (h *MCPHandler) APIList(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	mcps, err := h.uc.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMCPJSONs(mcps))
}

// APIGet returns one MCP as JSON.
func (h *MCPHandler) APIGet(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	mcpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	mcp, err := h.uc.Get(c.Request().Context(), identity.UserID, mcpID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMCPJSON(mcp))
}

// APIUpdate modifies an MCP and returns the updated record. The context
// document is re-validated on every update.
func (h *MCPHandler) APIUpdate(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	mcpID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	var form mcpForm
	if err := c.Bind(&form); err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}

	mcp, err := h.uc.Update(c.Request().Context(), identity.UserID, mcpID, usecase.MCPInput(form))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMCPJSON(mcp))
}
