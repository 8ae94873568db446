package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"guidemyai/config"
	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/delivery/http/response"
	"guidemyai/internal/domain/service"
	"guidemyai/internal/usecase"
)

const bearerPrefix = "Bearer "

// PublicRoutes is the allow-list of paths served without identity resolution.
// It is built once at router construction and read-only afterwards; nothing
// recomputes it per request.
type PublicRoutes struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewPublicRoutes builds the allow-list from exact paths and path prefixes.
func NewPublicRoutes(exact, prefixes []string) *PublicRoutes {
	set := make(map[string]struct{}, len(exact))
	for _, path := range exact {
		set[path] = struct{}{}
	}

	return &PublicRoutes{exact: set, prefixes: prefixes}
}

// Contains reports whether a request path is public.
func (p *PublicRoutes) Contains(path string) bool {
	if _, ok := p.exact[path]; ok {
		return true
	}

	return p.IsAsset(path)
}

// IsAsset reports whether a path matches one of the asset prefixes.
func (p *PublicRoutes) IsAsset(path string) bool {
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// AuthMiddleware is the request authenticator. For every request outside the
// allow-list it resolves an identity from a bearer token or the session
// cookie, and rejects unauthenticated requests to any path but the home page.
type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
	signer      service.CookieSigner
	public      *PublicRoutes
	cookieName  string
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	authUsecase usecase.AuthUsecase,
	signer service.CookieSigner,
	public *PublicRoutes,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		signer:      signer,
		public:      public,
		cookieName:  cfg.Auth.CookieName,
		logger:      logger,
	}
}

// Authenticate is the core middleware function. A fresh identity is resolved
// per request; nothing survives between requests.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path

		// Static assets never carry an identity; skip the lookup entirely.
		if m.public.IsAsset(path) {
			return next(c)
		}

		// Identity resolution is best-effort even on public routes so pages
		// like the session callback and the nav bar see the signed-in user.
		identity := m.resolveIdentity(c)
		if identity != nil {
			ctx := deliverycontext.WithIdentity(c.Request().Context(), identity)
			c.SetRequest(c.Request().WithContext(ctx))
		}

		// The home page renders for anonymous and authenticated users alike.
		if path == "/" || m.public.Contains(path) {
			return next(c)
		}

		if identity == nil {
			return response.Unauthorized(c)
		}

		return next(c)
	}
}

// resolveIdentity tries the Authorization header first, then the session
// cookie. A nil return means anonymous.
func (m *AuthMiddleware) resolveIdentity(c echo.Context) *deliverycontext.Identity {
	if identity := m.resolveBearer(c); identity != nil {
		return identity
	}

	return m.resolveCookie(c)
}

func (m *AuthMiddleware) resolveBearer(c echo.Context) *deliverycontext.Identity {
	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil
	}

	token := authHeader[len(bearerPrefix):]
	userID, err := m.authUsecase.ResolveBearer(c.Request().Context(), token)
	if err != nil {
		return nil
	}

	identity := &deliverycontext.Identity{UserID: userID, Token: token}
	m.enrichDisplayName(c, identity)

	return identity
}

func (m *AuthMiddleware) resolveCookie(c echo.Context) *deliverycontext.Identity {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	token, err := m.signer.Verify(cookie.Value)
	if err != nil {
		return nil
	}

	lookup := m.authUsecase.GetSession(c.Request().Context(), token)
	switch lookup.State {
	case usecase.SessionFound:
		return &deliverycontext.Identity{
			UserID:    lookup.User.ID,
			UserEmail: lookup.User.Email,
			UserName:  lookup.User.Name,
			Token:     token,
		}
	case usecase.SessionUnavailable:
		// Storage trouble is not the caller's fault; log it and treat the
		// request as anonymous rather than failing the page.
		m.logger.Warn("Session lookup unavailable, treating as anonymous",
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", lookup.Err),
		)
	}

	return nil
}

// enrichDisplayName fills in the user's name and email for page rendering.
// Failure is non-fatal; the identity stays valid with just the id.
func (m *AuthMiddleware) enrichDisplayName(c echo.Context, identity *deliverycontext.Identity) {
	lookup := m.authUsecase.GetSession(c.Request().Context(), identity.Token)
	if lookup.State == usecase.SessionFound {
		identity.UserEmail = lookup.User.Email
		identity.UserName = lookup.User.Name
	}
}
