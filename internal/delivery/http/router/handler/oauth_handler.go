package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"guidemyai/config"
	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/delivery/http/response"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/usecase"
)

// OAuthHandler implements the authorization-code handoff for external
// clients: a dedicated login page that, on success, redirects the user agent
// back to the client with a fresh session token.
type OAuthHandler struct {
	uc            usecase.AuthUsecase
	redirectParam string
	logger        *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		uc:            uc,
		redirectParam: cfg.Auth.RedirectParam,
		logger:        logger,
	}
}

// LoginPage renders the client-facing login form. The redirect_uri is
// required up front so a misconfigured client fails before the user types
// anything.
func (h *OAuthHandler) LoginPage(c echo.Context) error {
	redirectURI := c.QueryParam("redirect_uri")
	if redirectURI == "" {
		return response.InvalidRequest(c, "redirect_uri is required")
	}

	clientName := c.QueryParam("client_name")
	if clientName == "" {
		clientName = clientNameFrom(redirectURI)
	}

	return c.Render(http.StatusOK, "oauth_login", map[string]any{
		"RedirectURI": redirectURI,
		"ClientName":  clientName,
	})
}

// LoginAction authenticates the credentials from the handoff form and
// returns the client redirect URL carrying the session token.
func (h *OAuthHandler) LoginAction(c echo.Context) error {
	redirectURI := c.QueryParam("redirect_uri")
	if redirectURI == "" {
		return response.InvalidRequest(c, "redirect_uri is required")
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return response.InvalidGrant(c)
	}
	if form.Email == "" || form.Password == "" {
		return response.InvalidGrant(c)
	}

	output, err := h.uc.SignIn(c.Request().Context(), usecase.SignInInput(form))
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			return response.InvalidGrant(c)
		}

		// Soft service errors surface their own code. Anything else, storage
		// failures included, still answers the client as a failed grant.
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
			return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode())
		}

		h.logger.Warn("Sign-in failed during authorization handoff", slog.Any("error", err))

		return response.InvalidGrant(c)
	}

	redirectURL, err := h.buildRedirectURL(redirectURI, output.Session.Token)
	if err != nil {
		return response.InvalidRequest(c, "redirect_uri is invalid")
	}

	return c.JSON(http.StatusOK, map[string]string{"redirectUrl": redirectURL})
}

// Callback hands an already-signed-in browser session back to the client
// without asking for credentials again.
func (h *OAuthHandler) Callback(c echo.Context) error {
	redirectURI := c.QueryParam("redirect_uri")
	if redirectURI == "" {
		return c.Redirect(http.StatusFound, "/")
	}

	identity := deliverycontext.GetIdentity(c.Request().Context())
	if identity == nil || identity.Token == "" {
		return c.Redirect(http.StatusFound, "/")
	}

	u, err := url.Parse(redirectURI)
	if err != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	if u.Path == "" {
		u.Path = "/"
	}

	// The session callback always delivers the token under "token"; the
	// configurable parameter name only applies to the handoff login action.
	query := u.Query()
	query.Set("token", identity.Token)
	u.RawQuery = query.Encode()

	return c.Redirect(http.StatusFound, u.String())
}

// buildRedirectURL appends the token to the client's redirect URI. A URI
// without a path gets "/" so the result is stable for clients comparing URLs.
func (h *OAuthHandler) buildRedirectURL(redirectURI, token string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", errors.Wrap(err, "parse redirect_uri")
	}
	if u.Path == "" {
		u.Path = "/"
	}

	query := u.Query()
	query.Set(h.redirectParam, token)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// clientNameFrom derives a display name for the consent page from the
// client's host.
func clientNameFrom(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Hostname() == "" {
		return "an external application"
	}

	return u.Hostname()
}
