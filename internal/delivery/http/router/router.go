// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"guidemyai/internal/delivery/http/middleware"
	"guidemyai/internal/delivery/http/router/handler"
	"guidemyai/internal/delivery/http/view"
	"guidemyai/internal/metrics"
)

// publicRoutes is the fixed allow-list of anonymous paths. It is resolved
// once here; handlers never opt themselves out of authentication at runtime.
var publicRoutes = middleware.NewPublicRoutes(
	[]string{
		"/",
		"/health",
		"/metrics",
		"/auth/signup",
		"/auth/signup/action",
		"/auth/login",
		"/auth/login/action",
		"/auth/callback",
		"/auth/social/google",
		"/auth/social/google/callback",
		"/oauth/login",
		"/oauth/login/action",
		"/api/auth/signup",
		"/api/auth/validate-token",
	},
	[]string{"/css/", "/js/"},
)

// NewPublicRoutes provides the allow-list to the authenticator.
func NewPublicRoutes() *middleware.PublicRoutes {
	return publicRoutes
}

type RouterParams struct {
	fx.In

	HomeHandler    *handler.HomeHandler
	AuthHandler    *handler.AuthHandler
	OAuthHandler   *handler.OAuthHandler
	RuleHandler    *handler.RuleHandler
	MCPHandler     *handler.MCPHandler
	ProfileHandler *handler.ProfileHandler
	Metrics        *metrics.Collector
}

// router holds all the handlers that need to be registered.
type router struct {
	home    *handler.HomeHandler
	auth    *handler.AuthHandler
	oauth   *handler.OAuthHandler
	rule    *handler.RuleHandler
	mcp     *handler.MCPHandler
	profile *handler.ProfileHandler
	metrics *metrics.Collector
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		home:    params.HomeHandler,
		auth:    params.AuthHandler,
		oauth:   params.OAuthHandler,
		rule:    params.RuleHandler,
		mcp:     params.MCPHandler,
		profile: params.ProfileHandler,
		metrics: params.Metrics,
	}
}

// RegisterRoutes sets up all the routes for the application. The request
// authenticator runs globally; anonymous access is governed by the
// publicRoutes allow-list, not by route registration order.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", r.metrics.Handler())
	e.StaticFS("/css", echo.MustSubFS(view.Assets(), "css"))

	e.GET("/", r.home.Home)

	// Browser auth pages and actions
	authGroup := e.Group("/auth")
	{
		authGroup.GET("/signup", r.auth.SignupPage)
		authGroup.POST("/signup/action", r.auth.SignupAction)
		authGroup.GET("/login", r.auth.LoginPage)
		authGroup.POST("/login/action", r.auth.LoginAction)
		authGroup.POST("/logout", r.auth.Logout)
		authGroup.GET("/callback", r.oauth.Callback)
		authGroup.GET("/social/google", r.auth.GoogleRedirect)
		authGroup.GET("/social/google/callback", r.auth.GoogleCallback)
	}

	// Authorization handoff for external clients
	oauthGroup := e.Group("/oauth")
	{
		oauthGroup.GET("/login", r.oauth.LoginPage)
		oauthGroup.POST("/login/action", r.oauth.LoginAction)
	}

	// Browser resource pages
	ruleGroup := e.Group("/rules")
	{
		ruleGroup.GET("", r.rule.Index)
		ruleGroup.GET("/new", r.rule.New)
		ruleGroup.POST("", r.rule.Create)
		ruleGroup.GET("/:id", r.rule.Show)
		ruleGroup.POST("/destroy/:id", r.rule.Destroy)
	}

	mcpGroup := e.Group("/mcps")
	{
		mcpGroup.GET("", r.mcp.Index)
		mcpGroup.GET("/new", r.mcp.New)
		mcpGroup.POST("", r.mcp.Create)
		mcpGroup.GET("/:id", r.mcp.Show)
		mcpGroup.POST("/destroy/:id", r.mcp.Destroy)
	}

	profileGroup := e.Group("/profiles")
	{
		profileGroup.GET("", r.profile.Index)
		profileGroup.GET("/new", r.profile.New)
		profileGroup.POST("/create", r.profile.Create)
		profileGroup.GET("/:id", r.profile.Show)
		profileGroup.POST("/destroy/:id", r.profile.Destroy)
	}

	// JSON API
	apiGroup := e.Group("/api")
	{
		apiGroup.POST("/auth/signup", r.auth.APISignup)
		apiGroup.POST("/auth/validate-token", r.auth.ValidateToken)

		apiGroup.GET("/rules", r.rule.APIList)
		apiGroup.GET("/rules/:id", r.rule.APIGet)
		apiGroup.POST("/rules/:id", r.rule.APIUpdate)

		apiGroup.GET("/mcps", r.mcp.APIList)
		apiGroup.GET("/mcps/:id", r.mcp.APIGet)
		apiGroup.POST("/mcps/:id", r.mcp.APIUpdate)

		apiGroup.GET("/profiles", r.profile.APIList)
		apiGroup.POST("/profiles", r.profile.APICreate)
		apiGroup.GET("/profiles/:id", r.profile.APIGet)
		apiGroup.POST("/profiles/:id", r.profile.APIUpdate)
	}
}
