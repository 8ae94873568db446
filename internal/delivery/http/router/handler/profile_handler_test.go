package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
)

func TestProfileHandler_APICreate(t *testing.T) {
	userID := uuid.New()
	ruleID := uuid.New()
	mcpID := uuid.New()

	e := newTestEcho(t)
	uc := newFakeProfileUsecase()
	h := NewProfileHandler(uc, newFakeRuleUsecase(), newFakeMCPUsecase())

	t.Run("success", func(t *testing.T) {
		body := `{"name":"dev","ruleIds":["` + ruleID.String() + `"],"mcpIds":["` + mcpID.String() + `"]}`
		c, rec := newJSONContext(e, http.MethodPost, "/api/profiles", body)
		withIdentity(c, &deliverycontext.Identity{UserID: userID})
		require.NoError(t, h.APICreate(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"dev"`)
		assert.Equal(t, []uuid.UUID{ruleID}, uc.lastIn.RuleIDs)
		assert.Equal(t, []uuid.UUID{mcpID}, uc.lastIn.MCPIDs)
	})

	t.Run("non-array reference sets are rejected", func(t *testing.T) {
		body := `{"name":"dev2","ruleIds":"not-an-array","mcpIds":[]}`
		c, _ := newJSONContext(e, http.MethodPost, "/api/profiles", body)
		withIdentity(c, &deliverycontext.Identity{UserID: userID})

		err := h.APICreate(c)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
		assert.Equal(t, "ruleIds and mcpIds must be arrays", appErr.Message())
	})

	t.Run("absent reference sets default to empty", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPost, "/api/profiles", `{"name":"empty"}`)
		withIdentity(c, &deliverycontext.Identity{UserID: userID})
		require.NoError(t, h.APICreate(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, uc.lastIn.RuleIDs)
		assert.Empty(t, uc.lastIn.MCPIDs)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPost, "/api/profiles", `{"ruleIds":[],"mcpIds":[]}`)
		withIdentity(c, &deliverycontext.Identity{UserID: userID})

		err := h.APICreate(c)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		body := `{"name":"dev","ruleIds":[],"mcpIds":[]}`
		c, _ := newJSONContext(e, http.MethodPost, "/api/profiles", body)
		withIdentity(c, &deliverycontext.Identity{UserID: userID})

		err := h.APICreate(c)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
		assert.Equal(t, "A profile with this name already exists", appErr.Message())
	})

	t.Run("malformed ids are skipped", func(t *testing.T) {
		body := `{"name":"dev3","ruleIds":["not-a-uuid","` + ruleID.String() + `"],"mcpIds":[]}`
		c, _ := newJSONContext(e, http.MethodPost, "/api/profiles", body)
		withIdentity(c, &deliverycontext.Identity{UserID: userID})
		require.NoError(t, h.APICreate(c))

		assert.Equal(t, []uuid.UUID{ruleID}, uc.lastIn.RuleIDs)
	})
}

func TestProfileHandler_APIUpdate(t *testing.T) {
	userID := uuid.New()
	uc := newFakeProfileUsecase()
	profile := &entity.Profile{ID: uuid.New(), UserID: userID, Name: "dev"}
	uc.profiles[profile.ID] = profile

	e := newTestEcho(t)
	h := NewProfileHandler(uc, newFakeRuleUsecase(), newFakeMCPUsecase())

	ruleID := uuid.New()
	body := `{"name":"renamed","ruleIds":["` + ruleID.String() + `"],"mcpIds":[]}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/profiles/"+profile.ID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(profile.ID.String())
	withIdentity(c, &deliverycontext.Identity{UserID: userID})
	require.NoError(t, h.APIUpdate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "renamed", uc.profiles[profile.ID].Name)
	assert.Equal(t, []uuid.UUID{ruleID}, uc.lastIn.RuleIDs)
}

func TestProfileHandler_Create_FormCheckboxes(t *testing.T) {
	userID := uuid.New()
	ruleA := uuid.New()
	ruleB := uuid.New()

	uc := newFakeProfileUsecase()
	e := newTestEcho(t)
	h := NewProfileHandler(uc, newFakeRuleUsecase(), newFakeMCPUsecase())

	form := url.Values{
		"name":    {"dev"},
		"ruleIds": {ruleA.String(), ruleB.String()},
	}
	c, rec := newFormContext(e, http.MethodPost, "/profiles/create", form)
	withIdentity(c, &deliverycontext.Identity{UserID: userID})
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profiles", rec.Header().Get(echoHeaderLocation))
	assert.Equal(t, []uuid.UUID{ruleA, ruleB}, uc.lastIn.RuleIDs)
	assert.Empty(t, uc.lastIn.MCPIDs)
}

func TestProfileHandler_Destroy_RequiresTunnelField(t *testing.T) {
	userID := uuid.New()
	uc := newFakeProfileUsecase()
	profile := &entity.Profile{ID: uuid.New(), UserID: userID, Name: "dev"}
	uc.profiles[profile.ID] = profile

	e := newTestEcho(t)
	h := NewProfileHandler(uc, newFakeRuleUsecase(), newFakeMCPUsecase())

	form := url.Values{"_method": {"PATCH"}}
	c, _ := newFormContext(e, http.MethodPost, "/profiles/destroy/"+profile.ID.String(), form)
	c.SetParamNames("id")
	c.SetParamValues(profile.ID.String())
	withIdentity(c, &deliverycontext.Identity{UserID: userID})

	err := h.Destroy(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusMethodNotAllowed, httpErr.Code)
	assert.Len(t, uc.profiles, 1)
}
