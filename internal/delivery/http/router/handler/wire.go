package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
)

// identityFrom returns the authenticated identity for a request. The request
// authenticator guarantees it is set on every protected route.
func identityFrom(c echo.Context) (*deliverycontext.Identity, error) {
	identity := deliverycontext.GetIdentity(c.Request().Context())
	if identity == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	return identity, nil
}

// renderResourceError re-renders a form page with a user-facing message when
// the failure is an AppError; anything else propagates to the error handler.
func renderResourceError(c echo.Context, page string, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return c.Render(appErr.HTTPCode(), page, map[string]any{"Error": appErr.Message()})
	}

	return err
}

// JSON shapes for the /api surface.

type ruleJSON struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toRuleJSON(rule *entity.Rule) ruleJSON {
	return ruleJSON{
		ID:        rule.ID.String(),
		UserID:    rule.UserID.String(),
		Name:      rule.Name,
		Content:   rule.Content,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
	}
}

func toRuleJSONs(rules []*entity.Rule) []ruleJSON {
	out := make([]ruleJSON, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toRuleJSON(rule))
	}

	return out
}

type mcpJSON struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Context   string    `json:"context"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toMCPJSON(mcp *entity.MCP) mcpJSON {
	return mcpJSON{
		ID:        mcp.ID.String(),
		UserID:    mcp.UserID.String(),
		Name:      mcp.Name,
		Context:   mcp.Context,
		CreatedAt: mcp.CreatedAt,
		UpdatedAt: mcp.UpdatedAt,
	}
}

func toMCPJSONs(mcps []*entity.MCP) []mcpJSON {
	out := make([]mcpJSON, 0, len(mcps))
	for _, mcp := range mcps {
		out = append(out, toMCPJSON(mcp))
	}

	return out
}

type profileJSON struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Rules     []ruleJSON `json:"rules"`
	MCPs      []mcpJSON  `json:"mcps"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toProfileJSON(profile *entity.Profile) profileJSON {
	return profileJSON{
		ID:        profile.ID.String(),
		UserID:    profile.UserID.String(),
		Name:      profile.Name,
		Rules:     toRuleJSONs(profile.Rules),
		MCPs:      toMCPJSONs(profile.MCPs),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func toProfileJSONs(profiles []*entity.Profile) []profileJSON {
	out := make([]profileJSON, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, toProfileJSON(profile))
	}

	return out
}
