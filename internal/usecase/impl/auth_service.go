// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"guidemyai/config"
	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/domain/service"
	"guidemyai/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	sessionRepo    repository.SessionRepository
	hasher         service.PasswordHasher
	googleOAuth    service.OAuthProvider
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	CredentialRepo repository.CredentialRepository
	SessionRepo    repository.SessionRepository
	Hasher         service.PasswordHasher
	GoogleOAuth    service.OAuthProvider
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	sessionTTL := 7 * 24 * time.Hour
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.SessionTTL > 0 {
		sessionTTL = params.Config.Auth.SessionTTL
	}

	return &authService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		credentialRepo: params.CredentialRepo,
		sessionRepo:    params.SessionRepo,
		hasher:         params.Hasher,
		googleOAuth:    params.GoogleOAuth,
		sessionTTL:     sessionTTL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// newSessionToken generates an opaque 256-bit session token.
func newSessionToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

func (srv *authService) newSession(userID uuid.UUID) *entity.Session {
	return &entity.Session{
		UserID:    userID,
		Token:     newSessionToken(),
		ExpiresAt: time.Now().Add(srv.sessionTTL),
	}
}

// SignUp creates a user with an email credential and issues a session, all in
// one transaction.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	var output *usecase.SessionOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		credentialRepo := repoFactory.CredentialRepo()
		sessionRepo := repoFactory.SessionRepo()

		_, err := credentialRepo.FindByProvider(ctx, entity.ProviderEmail, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken
		}
		if !errors.Is(err, repository.ErrCredentialNotFound) {
			return errors.Wrap(err, "failed to check existing credential")
		}

		passwordHash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		user := &entity.User{
			Email: input.Email,
			Name:  input.Name,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		credential := &entity.Credential{
			UserID:         user.ID,
			Provider:       entity.ProviderEmail,
			ProviderUserID: input.Email,
			PasswordHash:   passwordHash,
		}
		if err := credentialRepo.Create(ctx, credential); err != nil {
			return err
		}

		session := srv.newSession(user.ID)
		if err := sessionRepo.Create(ctx, session); err != nil {
			return err
		}

		output = &usecase.SessionOutput{User: user, Session: session}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute signup transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", output.User.ID))

	return output, nil
}

// SignIn verifies a password login and issues a session. Unknown email and
// wrong password both surface as invalid credentials.
func (srv *authService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SessionOutput, error) {
	credential, err := srv.credentialRepo.FindByProvider(ctx, entity.ProviderEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find credential")
	}

	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for credential")
	}

	session := srv.newSession(user.ID)
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Signin completed", slog.Any("userID", user.ID))

	return &usecase.SessionOutput{User: user, Session: session}, nil
}

// GetSession resolves a session token to its owning user. Expired or unknown
// tokens are Absent; storage failures are Unavailable and carry the error.
func (srv *authService) GetSession(ctx context.Context, token string) usecase.SessionLookup {
	if token == "" {
		return usecase.SessionLookup{State: usecase.SessionAbsent}
	}

	session, err := srv.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
			return usecase.SessionLookup{State: usecase.SessionAbsent}
		}

		return usecase.SessionLookup{State: usecase.SessionUnavailable, Err: err}
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.SessionLookup{State: usecase.SessionAbsent}
		}

		return usecase.SessionLookup{State: usecase.SessionUnavailable, Err: err}
	}

	return usecase.SessionLookup{State: usecase.SessionFound, User: user, Session: session}
}

// SignOut deletes the session for a token. Unknown tokens are a no-op.
func (srv *authService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return srv.sessionRepo.DeleteByToken(ctx, token)
}

// PurgeExpiredSessions removes every session past its expiry.
func (srv *authService) PurgeExpiredSessions(ctx context.Context) error {
	return srv.sessionRepo.DeleteExpired(ctx)
}

// ValidateToken reports whether a token resolves to a live session.
func (srv *authService) ValidateToken(ctx context.Context, token string) (bool, error) {
	lookup := srv.GetSession(ctx, token)
	if lookup.State == usecase.SessionUnavailable {
		return false, lookup.Err
	}

	return lookup.State == usecase.SessionFound, nil
}

// ResolveBearer maps a bearer token to the owning user id.
func (srv *authService) ResolveBearer(ctx context.Context, token string) (uuid.UUID, error) {
	session, err := srv.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
			return uuid.Nil, domainerrors.ErrUnauthorized
		}

		return uuid.Nil, errors.Wrap(err, "failed to resolve bearer token")
	}

	return session.UserID, nil
}

// GoogleAuthURL builds the Google authorization redirect with fresh state.
func (srv *authService) GoogleAuthURL() string {
	return srv.googleOAuth.BuildAuthorizationURL(srv.googleOAuth.GenerateState())
}

// SignInWithGoogle exchanges an authorization code, provisioning the user and
// credential on first sign-in, and issues a session.
func (srv *authService) SignInWithGoogle(ctx context.Context, input usecase.GoogleSignInInput) (*usecase.SessionOutput, error) {
	if !srv.googleOAuth.ValidateState(input.State) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	oauthUser, err := srv.googleOAuth.ExchangeCode(ctx, input.Code)
	if err != nil {
		srv.log(ctx).Error("Google code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredentials
	}

	var output *usecase.SessionOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		credentialRepo := repoFactory.CredentialRepo()
		sessionRepo := repoFactory.SessionRepo()

		user, err := srv.findOrProvisionGoogleUser(ctx, userRepo, credentialRepo, oauthUser)
		if err != nil {
			return err
		}

		session := srv.newSession(user.ID)
		if err := sessionRepo.Create(ctx, session); err != nil {
			return err
		}

		output = &usecase.SessionOutput{User: user, Session: session}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Google signin completed", slog.Any("userID", output.User.ID))

	return output, nil
}

func (srv *authService) findOrProvisionGoogleUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	credentialRepo repository.CredentialRepository,
	oauthUser *service.OAuthUser,
) (*entity.User, error) {
	credential, err := credentialRepo.FindByProvider(ctx, entity.ProviderGoogle, oauthUser.ProviderUserID)
	if err == nil {
		return userRepo.FindByID(ctx, credential.UserID)
	}
	if !errors.Is(err, repository.ErrCredentialNotFound) {
		return nil, errors.Wrap(err, "failed to check google credential")
	}

	// First Google sign-in. Link to an existing account with the same email,
	// or provision a fresh user.
	user, err := userRepo.FindByEmail(ctx, oauthUser.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &entity.User{
			Email: oauthUser.Email,
			Name:  oauthUser.Name,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to look up user by email")
	}

	googleCredential := &entity.Credential{
		UserID:         user.ID,
		Provider:       entity.ProviderGoogle,
		ProviderUserID: oauthUser.ProviderUserID,
	}
	if err := credentialRepo.Create(ctx, googleCredential); err != nil {
		return nil, err
	}

	return user, nil
}
