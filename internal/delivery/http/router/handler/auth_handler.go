package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"guidemyai/config"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/service"
	"guidemyai/internal/usecase"
)

// AuthHandler serves the signup/login pages, their form actions, the JSON
// auth endpoints, and the Google social sign-in flow.
type AuthHandler struct {
	uc         usecase.AuthUsecase
	signer     service.CookieSigner
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, signer service.CookieSigner, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		signer:     signer,
		cookieName: cfg.Auth.CookieName,
		logger:     logger,
	}
}

type signupForm struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
}

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// SignupPage renders the signup form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "auth_signup", map[string]any{})
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "auth_login", map[string]any{})
}

// SignupAction handles the browser signup form: create the account, set the
// session cookie, and send the user home.
func (h *AuthHandler) SignupAction(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "auth_signup", map[string]any{"Error": "Invalid request"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "auth_signup", map[string]any{"Error": errorMessage(err)})
	}

	output, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput(form))
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return c.Render(appErr.HTTPCode(), "auth_signup", map[string]any{"Error": appErr.Message()})
		}

		return err
	}

	h.setSessionCookie(c, output)

	return c.Redirect(http.StatusFound, "/")
}

// LoginAction handles the browser login form.
func (h *AuthHandler) LoginAction(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "auth_login", map[string]any{"Error": "Invalid request"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "auth_login", map[string]any{"Error": errorMessage(err)})
	}

	output, err := h.uc.SignIn(c.Request().Context(), usecase.SignInInput(form))
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return c.Render(appErr.HTTPCode(), "auth_login", map[string]any{"Error": appErr.Message()})
		}

		return err
	}

	h.setSessionCookie(c, output)

	return c.Redirect(http.StatusFound, "/")
}

// Logout deletes the session and expires the cookie. Always lands on the home
// page, signed in or not.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if token, err := h.signer.Verify(cookie.Value); err == nil {
			if err := h.uc.SignOut(c.Request().Context(), token); err != nil {
				h.logger.Warn("Failed to delete session on logout", slog.Any("error", err))
			}
		}
	}

	h.expireSessionCookie(c)

	return c.Redirect(http.StatusFound, "/")
}

// APISignup is the JSON signup endpoint.
func (h *AuthHandler) APISignup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	if _, err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput(form)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"signup": "success"})
}

type validateTokenRequest struct {
	Token string `json:"token" form:"token"`
}

// ValidateToken reports whether a token resolves to a live session.
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	var req validateTokenRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.NewValidationError("Invalid request")
	}

	valid, err := h.uc.ValidateToken(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"isValid": valid})
}

// GoogleRedirect sends the browser to Google's consent screen.
func (h *AuthHandler) GoogleRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.uc.GoogleAuthURL())
}

// GoogleCallback finishes the social sign-in: exchange the code, set the
// session cookie, and land on the home page.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	output, err := h.uc.SignInWithGoogle(c.Request().Context(), usecase.GoogleSignInInput{
		Code:  c.QueryParam("code"),
		State: c.QueryParam("state"),
	})
	if err != nil {
		h.logger.Warn("Google sign-in failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/auth/login")
	}

	h.setSessionCookie(c, output)

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, output *usecase.SessionOutput) {
	signed, err := h.signer.Sign(output.Session.Token)
	if err != nil {
		h.logger.Error("Failed to sign session cookie", slog.Any("error", err))

		return
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  output.Session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) expireSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// errorMessage unwraps an AppError's message for form re-rendering.
func errorMessage(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return "Invalid request"
}
