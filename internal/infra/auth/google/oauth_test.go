package google

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"guidemyai/config"
)

func testOAuthConfig() *config.Config {
	return &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "test_client_id",
			ClientSecret: "test_secret",
			RedirectURI:  "http://localhost:3000/auth/google/callback",
			Scopes:       "openid email profile",
		},
	}
}

func TestOAuthService_BuildAuthorizationURL(t *testing.T) {
	service := NewOAuthService(testOAuthConfig())

	state := service.GenerateState()
	result := service.BuildAuthorizationURL(state)

	expected := "https://accounts.google.com/o/oauth2/v2/auth" +
		"?client_id=test_client_id" +
		"&redirect_uri=http%3A%2F%2Flocalhost%3A3000%2Fauth%2Fgoogle%2Fcallback" +
		"&response_type=code" +
		"&scope=openid+email+profile" +
		"&state=" + state
	assert.Equal(t, expected, result)
}

func TestOAuthService_StateValidation(t *testing.T) {
	service := NewOAuthService(testOAuthConfig())

	state := service.GenerateState()
	assert.NotEmpty(t, state)

	// A generated state validates exactly once.
	assert.True(t, service.ValidateState(state))
	assert.False(t, service.ValidateState(state))

	// Unknown states never validate.
	assert.False(t, service.ValidateState("never-issued-state"))
}
