package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidemyai/config"
	domainerrors "guidemyai/internal/domain/errors"
)

func newAuthHandler(auth *fakeAuthUsecase) *AuthHandler {
	cfg := &config.Config{Auth: &config.AuthConfig{CookieName: "gma_session", RedirectParam: "code"}}

	return NewAuthHandler(auth, fakeSigner{}, cfg, discardLogger())
}

func sessionCookie(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "gma_session" {
			return cookie
		}
	}

	return nil
}

func TestAuthHandler_SignupAction_SetsCookieAndRedirects(t *testing.T) {
	auth := &fakeAuthUsecase{signUpOutput: sessionOutput(uuid.New(), "fresh-token")}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	form := url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"password123"},
	}
	c, rec := newFormContext(e, http.MethodPost, "/auth/signup/action", form)
	require.NoError(t, h.SignupAction(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echoHeaderLocation))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed:fresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
}

func TestAuthHandler_SignupAction_ShortPasswordRerendersForm(t *testing.T) {
	e := newTestEcho(t)
	h := newAuthHandler(&fakeAuthUsecase{})

	form := url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"short"},
	}
	c, rec := newFormContext(e, http.MethodPost, "/auth/signup/action", form)
	require.NoError(t, h.SignupAction(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestAuthHandler_LoginAction_InvalidCredentialsRerendersForm(t *testing.T) {
	auth := &fakeAuthUsecase{signInErr: domainerrors.ErrInvalidCredentials}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	form := url.Values{"email": {"alice@example.com"}, "password": {"wrong-password"}}
	c, rec := newFormContext(e, http.MethodPost, "/auth/login/action", form)
	require.NoError(t, h.LoginAction(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestAuthHandler_Logout_DeletesSessionAndExpiresCookie(t *testing.T) {
	auth := &fakeAuthUsecase{}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	c, rec := newFormContext(e, http.MethodPost, "/auth/logout", url.Values{})
	c.Request().AddCookie(&http.Cookie{Name: "gma_session", Value: "signed:old-token"})
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echoHeaderLocation))
	assert.Equal(t, []string{"old-token"}, auth.signedOut)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthHandler_APISignup(t *testing.T) {
	auth := &fakeAuthUsecase{signUpOutput: sessionOutput(uuid.New(), "fresh-token")}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/signup", body)
	require.NoError(t, h.APISignup(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"signup":"success"}`, rec.Body.String())
}

func TestAuthHandler_APISignup_DuplicateEmail(t *testing.T) {
	auth := &fakeAuthUsecase{signUpErr: domainerrors.ErrEmailTaken}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
	c, _ := newJSONContext(e, http.MethodPost, "/api/auth/signup", body)

	err := h.APISignup(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthHandler_ValidateToken(t *testing.T) {
	auth := &fakeAuthUsecase{validTokens: map[string]bool{"live-token": true}}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	t.Run("valid token", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPost, "/api/auth/validate-token", `{"token":"live-token"}`)
		require.NoError(t, h.ValidateToken(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"isValid":true}`, rec.Body.String())
	})

	t.Run("unknown token", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPost, "/api/auth/validate-token", `{"token":"dead-token"}`)
		require.NoError(t, h.ValidateToken(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"isValid":false}`, rec.Body.String())
	})
}

func TestAuthHandler_GoogleRedirect(t *testing.T) {
	auth := &fakeAuthUsecase{authURL: "https://accounts.google.com/o/oauth2/v2/auth?client_id=x"}
	e := newTestEcho(t)
	h := newAuthHandler(auth)

	c, rec := newFormContext(e, http.MethodGet, "/auth/social/google", nil)
	require.NoError(t, h.GoogleRedirect(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, auth.authURL, rec.Header().Get(echoHeaderLocation))
}

func TestAuthHandler_GoogleCallback(t *testing.T) {
	t.Run("success sets cookie and redirects home", func(t *testing.T) {
		auth := &fakeAuthUsecase{googleOutput: sessionOutput(uuid.New(), "google-token")}
		e := newTestEcho(t)
		h := newAuthHandler(auth)

		c, rec := newFormContext(e, http.MethodGet, "/auth/social/google/callback?code=abc&state=xyz", nil)
		require.NoError(t, h.GoogleCallback(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echoHeaderLocation))

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "signed:google-token", cookie.Value)
	})

	t.Run("failure lands on login page", func(t *testing.T) {
		auth := &fakeAuthUsecase{googleErr: domainerrors.ErrInvalidCredentials}
		e := newTestEcho(t)
		h := newAuthHandler(auth)

		c, rec := newFormContext(e, http.MethodGet, "/auth/social/google/callback?code=abc&state=bad", nil)
		require.NoError(t, h.GoogleCallback(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get(echoHeaderLocation))
		assert.Nil(t, sessionCookie(rec))
	})
}
