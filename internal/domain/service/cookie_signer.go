package service

// CookieSigner wraps a raw session token for the browser cookie and verifies
// it on the way back in. A cookie that fails verification is rejected before
// any storage lookup happens.
type CookieSigner interface {
	// Sign wraps a raw session token into the cookie value.
	Sign(token string) (string, error)

	// Verify unwraps a cookie value back to the raw session token.
	Verify(cookieValue string) (string, error)
}
