package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/usecase"
)

// ProfileHandler serves the profile pages and JSON API. Profiles bundle rule
// and MCP references; membership changes replace the whole set.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	ruleUC    usecase.RuleUsecase
	mcpUC     usecase.MCPUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profileUC usecase.ProfileUsecase, ruleUC usecase.RuleUsecase, mcpUC usecase.MCPUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC, ruleUC: ruleUC, mcpUC: mcpUC}
}

// profileAPIRequest carries the reference sets as raw JSON so that a
// non-array value can be rejected distinctly from an empty one.
type profileAPIRequest struct {
	Name    string          `json:"name"`
	RuleIDs json.RawMessage `json:"ruleIds"`
	MCPIDs  json.RawMessage `json:"mcpIds"`
}

// Index renders the user's profiles with their references.
func (h *ProfileHandler) Index(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profiles, err := h.profileUC.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "profiles_index", map[string]any{"Profiles": profiles})
}

// New renders the creation form with the user's rules and MCPs as choices.
func (h *ProfileHandler) New(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	rules, err := h.ruleUC.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	mcps, err := h.mcpUC.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "profiles_new", map[string]any{
		"Rules": rules,
		"MCPs":  mcps,
	})
}

// Show renders one profile.
func (h *ProfileHandler) Show(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	profile, err := h.profileUC.Get(c.Request().Context(), identity.UserID, profileID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "profiles_show", map[string]any{"Profile": profile})
}

// Create handles the creation form. Checkbox values arrive as repeated form
// fields; malformed ids are ignored.
func (h *ProfileHandler) Create(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	form, err := c.FormParams()
	if err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}

	input := usecase.SaveProfileInput{
		Name:    c.FormValue("name"),
		RuleIDs: parseUUIDs(form["ruleIds"]),
		MCPIDs:  parseUUIDs(form["mcpIds"]),
	}

	if _, err := h.profileUC.Create(c.Request().Context(), identity.UserID, input); err != nil {
		return renderResourceError(c, "profiles_new", err)
	}

	return c.Redirect(http.StatusFound, "/profiles")
}

// Destroy deletes a profile from the browser, requiring the `_method=DELETE`
// tunnel field. Its membership rows go with it.
func (h *ProfileHandler) Destroy(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if c.FormValue("_method") != "DELETE" {
		return echo.NewHTTPError(http.StatusMethodNotAllowed)
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	if err := h.profileUC.Delete(c.Request().Context(), identity.UserID, profileID); err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, "/profiles")
}

// APIList returns the user's profiles as JSON.
func (h *ProfileHandler) APIList(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profiles, err := h.profileUC.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileJSONs(profiles))
}

// APIGet returns one profile as JSON.
func (h *ProfileHandler) APIGet(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	profile, err := h.profileUC.Get(c.Request().Context(), identity.UserID, profileID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileJSON(profile))
}

// APICreate creates a profile and its reference sets in one call.
func (h *ProfileHandler) APICreate(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	input, err := bindProfileAPIRequest(c)
	if err != nil {
		return err
	}

	profile, err := h.profileUC.Create(c.Request().Context(), identity.UserID, *input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileJSON(profile))
}

// APIUpdate renames a profile and replaces its reference sets wholesale.
func (h *ProfileHandler) APIUpdate(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrNotFound
	}

	input, err := bindProfileAPIRequest(c)
	if err != nil {
		return err
	}

	profile, err := h.profileUC.Update(c.Request().Context(), identity.UserID, profileID, *input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileJSON(profile))
}

// bindProfileAPIRequest decodes the JSON body, rejecting non-array reference
// sets before any ids are parsed.
func bindProfileAPIRequest(c echo.Context) (*usecase.SaveProfileInput, error) {
	var req profileAPIRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.NewValidationError("Invalid request")
	}

	ruleIDs, ok := decodeIDArray(req.RuleIDs)
	if !ok {
		return nil, domainerrors.NewValidationError("ruleIds and mcpIds must be arrays")
	}
	mcpIDs, ok := decodeIDArray(req.MCPIDs)
	if !ok {
		return nil, domainerrors.NewValidationError("ruleIds and mcpIds must be arrays")
	}

	return &usecase.SaveProfileInput{Name: req.Name, RuleIDs: ruleIDs, MCPIDs: mcpIDs}, nil
}

// decodeIDArray accepts an absent or null field as empty and any JSON array
// as an id list. A non-array value is malformed; non-string or unparsable
// entries inside an array are skipped.
func decodeIDArray(raw json.RawMessage) ([]uuid.UUID, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}

	values := make([]string, 0, len(elements))
	for _, element := range elements {
		var value string
		if err := json.Unmarshal(element, &value); err != nil {
			continue
		}
		values = append(values, value)
	}

	return parseUUIDStrings(values), true
}

func parseUUIDs(values []string) []uuid.UUID {
	return parseUUIDStrings(values)
}

func parseUUIDStrings(values []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}
