package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/delivery/http/validator"
	"guidemyai/internal/delivery/http/view"
	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// marshalString renders a Go string as a JSON string literal for request
// bodies built by hand.
func marshalString(value string) string {
	encoded, _ := json.Marshal(value)

	return string(encoded)
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	renderer, err := view.New()
	require.NoError(t, err)
	e.Renderer = renderer

	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newFormContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, identity *deliverycontext.Identity) {
	ctx := deliverycontext.WithIdentity(c.Request().Context(), identity)
	c.SetRequest(c.Request().WithContext(ctx))
}

// --- fake auth usecase ---

type fakeAuthUsecase struct {
	signUpOutput *usecase.SessionOutput
	signUpErr    error
	signInOutput *usecase.SessionOutput
	signInErr    error
	lookup       usecase.SessionLookup
	signedOut    []string
	validTokens  map[string]bool
	authURL      string
	googleOutput *usecase.SessionOutput
	googleErr    error
}

func (f *fakeAuthUsecase) SignUp(_ context.Context, _ usecase.SignUpInput) (*usecase.SessionOutput, error) {
	return f.signUpOutput, f.signUpErr
}

func (f *fakeAuthUsecase) SignIn(_ context.Context, _ usecase.SignInInput) (*usecase.SessionOutput, error) {
	return f.signInOutput, f.signInErr
}

func (f *fakeAuthUsecase) GetSession(_ context.Context, _ string) usecase.SessionLookup {
	return f.lookup
}

func (f *fakeAuthUsecase) SignOut(_ context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)

	return nil
}

func (f *fakeAuthUsecase) PurgeExpiredSessions(_ context.Context) error {
	return nil
}

func (f *fakeAuthUsecase) ValidateToken(_ context.Context, token string) (bool, error) {
	return f.validTokens[token], nil
}

func (f *fakeAuthUsecase) ResolveBearer(_ context.Context, _ string) (uuid.UUID, error) {
	return uuid.Nil, domainerrors.ErrUnauthorized
}

func (f *fakeAuthUsecase) GoogleAuthURL() string {
	return f.authURL
}

func (f *fakeAuthUsecase) SignInWithGoogle(_ context.Context, _ usecase.GoogleSignInInput) (*usecase.SessionOutput, error) {
	return f.googleOutput, f.googleErr
}

// fakeSigner prefixes tokens instead of signing them.
type fakeSigner struct{}

func (fakeSigner) Sign(token string) (string, error) {
	return "signed:" + token, nil
}

func (fakeSigner) Verify(cookieValue string) (string, error) {
	if !strings.HasPrefix(cookieValue, "signed:") {
		return "", domainerrors.ErrUnauthorized
	}

	return strings.TrimPrefix(cookieValue, "signed:"), nil
}

func sessionOutput(userID uuid.UUID, token string) *usecase.SessionOutput {
	return &usecase.SessionOutput{
		User: &entity.User{ID: userID, Email: "user@example.com", Name: "User"},
		Session: &entity.Session{
			ID:        uuid.New(),
			UserID:    userID,
			Token:     token,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

// --- fake resource usecases ---

type fakeRuleUsecase struct {
	rules   map[uuid.UUID]*entity.Rule
	lastIn  usecase.RuleInput
	deleted []uuid.UUID
}

func newFakeRuleUsecase() *fakeRuleUsecase {
	return &fakeRuleUsecase{rules: make(map[uuid.UUID]*entity.Rule)}
}

func (f *fakeRuleUsecase) List(_ context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	out := make([]*entity.Rule, 0, len(f.rules))
	for _, rule := range f.rules {
		if rule.UserID == userID {
			out = append(out, rule)
		}
	}

	return out, nil
}

func (f *fakeRuleUsecase) Get(_ context.Context, userID, ruleID uuid.UUID) (*entity.Rule, error) {
	rule, ok := f.rules[ruleID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if rule.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return rule, nil
}

func (f *fakeRuleUsecase) Create(_ context.Context, userID uuid.UUID, input usecase.RuleInput) (*entity.Rule, error) {
	if input.Name == "" {
		return nil, domainerrors.NewValidationError("Name is required")
	}
	f.lastIn = input
	rule := &entity.Rule{ID: uuid.New(), UserID: userID, Name: input.Name, Content: input.Content}
	f.rules[rule.ID] = rule

	return rule, nil
}

func (f *fakeRuleUsecase) Update(ctx context.Context, userID, ruleID uuid.UUID, input usecase.RuleInput) (*entity.Rule, error) {
	rule, err := f.Get(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, domainerrors.NewValidationError("Name is required")
	}
	f.lastIn = input
	rule.Name = input.Name
	rule.Content = input.Content

	return rule, nil
}

func (f *fakeRuleUsecase) Delete(ctx context.Context, userID, ruleID uuid.UUID) error {
	if _, err := f.Get(ctx, userID, ruleID); err != nil {
		return err
	}
	delete(f.rules, ruleID)
	f.deleted = append(f.deleted, ruleID)

	return nil
}

type fakeMCPUsecase struct {
	mcps map[uuid.UUID]*entity.MCP
}

func newFakeMCPUsecase() *fakeMCPUsecase {
	return &fakeMCPUsecase{mcps: make(map[uuid.UUID]*entity.MCP)}
}

func (f *fakeMCPUsecase) List(_ context.Context, userID uuid.UUID) ([]*entity.MCP, error) {
	out := make([]*entity.MCP, 0, len(f.mcps))
	for _, mcp := range f.mcps {
		if mcp.UserID == userID {
			out = append(out, mcp)
		}
	}

	return out, nil
}

func (f *fakeMCPUsecase) Get(_ context.Context, userID, mcpID uuid.UUID) (*entity.MCP, error) {
	mcp, ok := f.mcps[mcpID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if mcp.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return mcp, nil
}

func (f *fakeMCPUsecase) Create(_ context.Context, userID uuid.UUID, input usecase.MCPInput) (*entity.MCP, error) {
	if err := entity.ValidateContext(input.Context); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}
	mcp := &entity.MCP{ID: uuid.New(), UserID: userID, Name: input.Name, Context: input.Context}
	f.mcps[mcp.ID] = mcp

	return mcp, nil
}

func (f *fakeMCPUsecase) Update(ctx context.Context, userID, mcpID uuid.UUID, input usecase.MCPInput) (*entity.MCP, error) {
	mcp, err := f.Get(ctx, userID, mcpID)
	if err != nil {
		return nil, err
	}
	if err := entity.ValidateContext(input.Context); err != nil {
		return nil, domainerrors.NewValidationError(err.Error())
	}
	mcp.Name = input.Name
	mcp.Context = input.Context

	return mcp, nil
}

func (f *fakeMCPUsecase) Delete(ctx context.Context, userID, mcpID uuid.UUID) error {
	if _, err := f.Get(ctx, userID, mcpID); err != nil {
		return err
	}
	delete(f.mcps, mcpID)

	return nil
}

type fakeProfileUsecase struct {
	profiles map[uuid.UUID]*entity.Profile
	lastIn   usecase.SaveProfileInput
}

func newFakeProfileUsecase() *fakeProfileUsecase {
	return &fakeProfileUsecase{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileUsecase) List(_ context.Context, userID uuid.UUID) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			out = append(out, profile)
		}
	}

	return out, nil
}

func (f *fakeProfileUsecase) Get(_ context.Context, userID, profileID uuid.UUID) (*entity.Profile, error) {
	profile, ok := f.profiles[profileID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	if profile.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return profile, nil
}

func (f *fakeProfileUsecase) Create(_ context.Context, userID uuid.UUID, input usecase.SaveProfileInput) (*entity.Profile, error) {
	if input.Name == "" {
		return nil, domainerrors.NewValidationError("Name is required")
	}
	for _, existing := range f.profiles {
		if existing.UserID == userID && existing.Name == input.Name {
			return nil, domainerrors.ErrProfileNameTaken
		}
	}
	f.lastIn = input
	profile := &entity.Profile{ID: uuid.New(), UserID: userID, Name: input.Name, Rules: []*entity.Rule{}, MCPs: []*entity.MCP{}}
	f.profiles[profile.ID] = profile

	return profile, nil
}

func (f *fakeProfileUsecase) Update(ctx context.Context, userID, profileID uuid.UUID, input usecase.SaveProfileInput) (*entity.Profile, error) {
	profile, err := f.Get(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	f.lastIn = input
	profile.Name = input.Name

	return profile, nil
}

func (f *fakeProfileUsecase) Delete(ctx context.Context, userID, profileID uuid.UUID) error {
	if _, err := f.Get(ctx, userID, profileID); err != nil {
		return err
	}
	delete(f.profiles, profileID)

	return nil
}
