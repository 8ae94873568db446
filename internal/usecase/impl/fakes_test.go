package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/domain/service"
)

// In-memory fakes for the repository and service interfaces. Each test builds
// a fresh fixture; nothing is shared between tests.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	users       *fakeUserRepo
	credentials *fakeCredentialRepo
	sessions    *fakeSessionRepo
	rules       *fakeRuleRepo
	mcps        *fakeMCPRepo
	profiles    *fakeProfileRepo
}

func newFixture() *fixture {
	f := &fixture{
		users:       &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)},
		credentials: &fakeCredentialRepo{},
		sessions:    &fakeSessionRepo{sessions: make(map[string]*entity.Session)},
		rules:       &fakeRuleRepo{rules: make(map[uuid.UUID]*entity.Rule)},
		mcps:        &fakeMCPRepo{mcps: make(map[uuid.UUID]*entity.MCP)},
	}
	f.profiles = &fakeProfileRepo{
		profiles: make(map[uuid.UUID]*entity.Profile),
		rules:    f.rules,
		mcps:     f.mcps,
	}

	return f
}

// Execute runs the callback directly; fakes have no transaction semantics.
func (f *fixture) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f)
}

func (f *fixture) UserRepo() repository.UserRepository             { return f.users }
func (f *fixture) CredentialRepo() repository.CredentialRepository { return f.credentials }
func (f *fixture) SessionRepo() repository.SessionRepository       { return f.sessions }
func (f *fixture) RuleRepo() repository.RuleRepository             { return f.rules }
func (f *fixture) MCPRepo() repository.MCPRepository               { return f.mcps }
func (f *fixture) ProfileRepo() repository.ProfileRepository       { return f.profiles }

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if user, ok := r.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.err != nil {
		return r.err
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.users[user.ID] = user

	return nil
}

// --- credentials ---

type fakeCredentialRepo struct {
	credentials []*entity.Credential
	err         error
}

func (r *fakeCredentialRepo) FindByProvider(_ context.Context, provider, providerUserID string) (*entity.Credential, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, credential := range r.credentials {
		if credential.Provider == provider && credential.ProviderUserID == providerUserID {
			return credential, nil
		}
	}

	return nil, repository.ErrCredentialNotFound
}

func (r *fakeCredentialRepo) Create(_ context.Context, credential *entity.Credential) error {
	if r.err != nil {
		return r.err
	}
	credential.ID = uuid.New()
	credential.CreatedAt = time.Now()
	r.credentials = append(r.credentials, credential)

	return nil
}

// --- sessions ---

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	err      error
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if r.err != nil {
		return r.err
	}
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	r.sessions[session.Token] = session

	return nil
}

func (r *fakeSessionRepo) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	if r.err != nil {
		return nil, r.err
	}
	session, ok := r.sessions[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		delete(r.sessions, token)

		return nil, repository.ErrSessionExpired
	}

	return session, nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.sessions, token)

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	for token, session := range r.sessions {
		if session.Expired(time.Now()) {
			delete(r.sessions, token)
		}
	}

	return nil
}

// --- rules ---

type fakeRuleRepo struct {
	rules map[uuid.UUID]*entity.Rule
	err   error
}

func (r *fakeRuleRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	if r.err != nil {
		return nil, r.err
	}
	var rules []*entity.Rule
	for _, rule := range r.rules {
		if rule.UserID == userID {
			rules = append(rules, rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].CreatedAt.After(rules[j].CreatedAt) })

	return rules, nil
}

func (r *fakeRuleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Rule, error) {
	if r.err != nil {
		return nil, r.err
	}
	if rule, ok := r.rules[id]; ok {
		return rule, nil
	}

	return nil, repository.ErrRuleNotFound
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *entity.Rule) error {
	if r.err != nil {
		return r.err
	}
	rule.ID = uuid.New()
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	r.rules[rule.ID] = rule

	return nil
}

func (r *fakeRuleRepo) Update(_ context.Context, rule *entity.Rule) error {
	if _, ok := r.rules[rule.ID]; !ok {
		return repository.ErrRuleNotFound
	}
	rule.UpdatedAt = time.Now()
	r.rules[rule.ID] = rule

	return nil
}

func (r *fakeRuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rules[id]; !ok {
		return repository.ErrRuleNotFound
	}
	delete(r.rules, id)

	return nil
}

// --- mcps ---

type fakeMCPRepo struct {
	mcps map[uuid.UUID]*entity.MCP
	err  error
}

func (r *fakeMCPRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.MCP, error) {
	if r.err != nil {
		return nil, r.err
	}
	var mcps []*entity.MCP
	for _, mcp := range r.mcps {
		if mcp.UserID == userID {
			mcps = append(mcps, mcp)
		}
	}
	sort.Slice(mcps, func(i, j int) bool { return mcps[i].CreatedAt.After(mcps[j].CreatedAt) })

	return mcps, nil
}

func (r *fakeMCPRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MCP, error) {
	if r.err != nil {
		return nil, r.err
	}
	if mcp, ok := r.mcps[id]; ok {
		return mcp, nil
	}

	return nil, repository.ErrMCPNotFound
}

func (r *fakeMCPRepo) Create(_ context.Context, mcp *entity.MCP) error {
	if r.err != nil {
		return r.err
	}
	mcp.ID = uuid.New()
	mcp.CreatedAt = time.Now()
	mcp.UpdatedAt = mcp.CreatedAt
	r.mcps[mcp.ID] = mcp

	return nil
}

func (r *fakeMCPRepo) Update(_ context.Context, mcp *entity.MCP) error {
	if _, ok := r.mcps[mcp.ID]; !ok {
		return repository.ErrMCPNotFound
	}
	mcp.UpdatedAt = time.Now()
	r.mcps[mcp.ID] = mcp

	return nil
}

func (r *fakeMCPRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.mcps[id]; !ok {
		return repository.ErrMCPNotFound
	}
	delete(r.mcps, id)

	return nil
}

// --- profiles ---

type fakeProfileRepo struct {
	profiles     map[uuid.UUID]*entity.Profile
	ruleRefs     map[uuid.UUID][]uuid.UUID
	mcpRefs      map[uuid.UUID][]uuid.UUID
	rules        *fakeRuleRepo
	mcps         *fakeMCPRepo
	err          error
	associateErr error
}

func (r *fakeProfileRepo) refs() {
	if r.ruleRefs == nil {
		r.ruleRefs = make(map[uuid.UUID][]uuid.UUID)
		r.mcpRefs = make(map[uuid.UUID][]uuid.UUID)
	}
}

func (r *fakeProfileRepo) load(profile *entity.Profile) *entity.Profile {
	r.refs()
	loaded := *profile
	loaded.Rules = nil
	loaded.MCPs = nil
	for _, ruleID := range r.ruleRefs[profile.ID] {
		if rule, ok := r.rules.rules[ruleID]; ok {
			loaded.Rules = append(loaded.Rules, rule)
		}
	}
	for _, mcpID := range r.mcpRefs[profile.ID] {
		if mcp, ok := r.mcps.mcps[mcpID]; ok {
			loaded.MCPs = append(loaded.MCPs, mcp)
		}
	}

	return &loaded
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	var profiles []*entity.Profile
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			profiles = append(profiles, r.load(profile))
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.After(profiles[j].CreatedAt) })

	return profiles, nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if profile, ok := r.profiles[id]; ok {
		return r.load(profile), nil
	}

	return nil, repository.ErrProfileNotFound
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.profiles {
		if existing.UserID == profile.UserID && existing.Name == profile.Name {
			return repository.ErrProfileNameTaken
		}
	}
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	r.profiles[profile.ID] = profile

	return nil
}

func (r *fakeProfileRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	profile, ok := r.profiles[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	for _, existing := range r.profiles {
		if existing.ID != id && existing.UserID == profile.UserID && existing.Name == name {
			return repository.ErrProfileNameTaken
		}
	}
	profile.Name = name
	profile.UpdatedAt = time.Now()

	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.profiles[id]; !ok {
		return repository.ErrProfileNotFound
	}
	delete(r.profiles, id)
	r.refs()
	delete(r.ruleRefs, id)
	delete(r.mcpRefs, id)

	return nil
}

func (r *fakeProfileRepo) ReplaceAssociations(_ context.Context, profileID uuid.UUID, ruleIDs, mcpIDs []uuid.UUID) error {
	if r.associateErr != nil {
		return r.associateErr
	}
	r.refs()
	r.ruleRefs[profileID] = ruleIDs
	r.mcpRefs[profileID] = mcpIDs

	return nil
}

// --- services ---

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

type fakeOAuthProvider struct {
	user        *service.OAuthUser
	exchangeErr error
	validStates map[string]bool
}

func (p *fakeOAuthProvider) BuildAuthorizationURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (p *fakeOAuthProvider) GenerateState() string {
	if p.validStates == nil {
		p.validStates = make(map[string]bool)
	}
	state := uuid.New().String()
	p.validStates[state] = true

	return state
}

func (p *fakeOAuthProvider) ValidateState(state string) bool {
	if !p.validStates[state] {
		return false
	}
	delete(p.validStates, state)

	return true
}

func (p *fakeOAuthProvider) ExchangeCode(_ context.Context, _ string) (*service.OAuthUser, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}

	return p.user, nil
}
