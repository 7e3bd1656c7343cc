// Package session defines the boundary to the hosted identity provider.
// The core never implements the OIDC protocol; it only reads these fields
// and invokes sign-in/out, exactly as the provider's client library exposes
// them.
package session

import "context"

// Session is the external authentication state a provider client exposes.
type Session interface {
	// IsLoading reports whether the provider is still bootstrapping the
	// session. Mutations issued during this window are rejected with an
	// explicit pending error rather than silently skipped.
	IsLoading() bool
	IsAuthenticated() bool
	// Err returns the provider-reported error, if any. It is distinct from
	// in-app validation errors and rendered as a dedicated failure surface.
	Err() error
	// Credential is the bearer token attached to remote requests. Empty
	// means "not yet authenticated".
	Credential() string
	Email() string
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
}

// Static is a Session backed by a pre-issued bearer token, used by the CLI
// and tests where the provider's interactive flow is out of reach.
type Static struct {
	token string
	email string
}

// NewStatic returns a Static session for the given token and email.
func NewStatic(token, email string) *Static {
	return &Static{token: token, email: email}
}

func (s *Static) IsLoading() bool       { return false }
func (s *Static) IsAuthenticated() bool { return s.token != "" }
func (s *Static) Err() error            { return nil }
func (s *Static) Credential() string    { return s.token }
func (s *Static) Email() string         { return s.email }

// SignIn is a no-op: the token is issued out of band.
func (s *Static) SignIn(ctx context.Context) error { return nil }

// SignOut discards the credential.
func (s *Static) SignOut(ctx context.Context) error {
	s.token = ""
	return nil
}
