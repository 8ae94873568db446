package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/usecase"
)

// RuleHandler serves the rule pages and the rule JSON API.
type RuleHandler struct {
	uc usecase.RuleUsecase
}

// NewRuleHandler is the constructor for RuleHandler, injected by Fx.
func NewRuleHandler(uc usecase.RuleUsecase) *RuleHandler {
	return &RuleHandler{uc: uc}
}

type ruleForm struct {
	Name    string `form:"name" json:"name"`
	Content string `form:"content" json:"content"`
}

// Index renders the user's rules, newest first.
func (h *RuleHandler) Index(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	rules, err := h.uc.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "rules_index", map[string]any{"Rules": rules})
}

// New renders the creation form.
func (h *RuleHandler) New(c echo.Context) error {
	return c.Render(http.StatusOK, "rules_new", map[string]any{})
}

// Show renders one rule.
func (h *RuleHandler) Show(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	rule, err := h.uc.Get(c.Request().Context(), identity.UserID, ruleID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "rules_show", map[string]any{"Rule": rule})
}

// Create handles the creation form and returns to the index.
func (h *RuleHandler) Create(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var form ruleForm
	if err := c.Bind(&form); err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}

	if _, err := h.uc.Create(c.Request().Context(), identity.UserID, usecase.RuleInput(form)); err != nil {
		return renderResourceError(c, "rules_new", err)
	}

	return c.Redirect(http.StatusFound, "/rules")
}

// Destroy deletes a rule from the browser. The form tunnels the method
// through a `_method` field; anything but DELETE is rejected.
func (h *RuleHandler) Destroy(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if c.FormValue("_method") != "DELETE" {
		return echo.NewHTTPError(http.StatusMethodNotAllowed)
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	if err := h.uc.Delete(c.Request().Context(), identity.UserID, ruleID); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/rules")
}

// APIList returns the user's rules as JSON.
func (h *RuleHandler) APIList(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	rules, err := h.uc.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRuleJSONs(rules))
}

// APIGet returns one rule as JSON.
func (h *RuleHandler) APIGet(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	rule, err := h.uc.Get(c.Request().Context(), identity.UserID, ruleID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRuleJSON(rule))
}

// APIUpdate modifies a rule and returns the updated record.
func (h *RuleHandler) APIUpdate(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	var form ruleForm
	if err := c.Bind(&form); err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}

	rule, err := h.uc.Update(c.Request().Context(), identity.UserID, ruleID, usecase.RuleInput(form))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRuleJSON(rule))
}
