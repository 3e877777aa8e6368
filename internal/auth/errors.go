package auth

import "errors"

// ErrInvalidCredentials is the retryable sign-in failure surfaced to the
// login form.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// ErrTimeout indicates the provider did not answer within the configured
// window; callers treat it as "no session" / "authentication failed".
var ErrTimeout = errors.New("auth: provider timed out")

// ErrSignUpUnsupported is returned by providers without self-registration.
var ErrSignUpUnsupported = errors.New("auth: sign up is not supported by this provider")
