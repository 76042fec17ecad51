package jobboard

import (
	"context"
	"reflect"

	"github.com/golang-jwt/jwt/v5"
)

type Auther struct {
	provider        IdentityProvider
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
	tokenService    TokenService
	customTokens    bool
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:        provider,
		signingKey:      []byte(opts.GetSigningKey()),
		tokenExpiration: opts.GetTokenExpiration(),
		audience:        opts.GetAudience(),
		issuer:          opts.GetIssuer(),
		logger:          defLogger{},
		tokenService:    tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger == nil {
		return s
	}

	s.logger = logger

	// an injected token service survives logger changes
	if !s.customTokens {
		s.tokenService = NewTokenService(
			s.signingKey,
			s.tokenExpiration,
			s.issuer,
			s.audience,
			logger,
		)
	}

	return s
}

// WithTokenService overrides the token service, e.g. to inject a clock in tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
		s.customTokens = true
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies credentials and, for an active account, issues a token
// asserting the account's handle.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	var err error
	var identity Identity

	if identity, err = s.provider.VerifyIdentity(ctx, identifier, password); err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	if err := RequireActive(identity); err != nil {
		s.logger.Info("Login blocked for inactive account", "identifier", identifier)
		return "", err
	}

	return s.tokenService.Generate(identity)
}

// ValidateClaims checks a raw token and returns its structured claims
func (s Auther) ValidateClaims(raw string) (AuthClaims, error) {
	return s.tokenService.Validate(raw)
}

// SessionFromToken validates a raw token and exposes its claims as a Session
func (s Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

// IdentityFromSession loads the account behind a validated session
func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	subject := session.GetUserID()
	if so, ok := session.(*SessionObject); ok && so.GetSubject() != "" {
		subject = so.GetSubject()
	}

	identity, err := s.provider.FindIdentityByIdentifier(ctx, subject)
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier", "error", err)
		return nil, err
	}

	return identity, nil
}

// IdentityFromToken decodes a bearer token and resolves the account it
// asserts: decode, then look up by subject. Rejection reasons propagate so
// the boundary can log them distinctly while answering uniformly.
func (s *Auther) IdentityFromToken(ctx context.Context, raw string) (Identity, error) {
	session, err := s.SessionFromToken(raw)
	if err != nil {
		return nil, err
	}

	return s.IdentityFromSession(ctx, session)
}

// ActiveIdentityFromToken composes token resolution with the account-status
// gate. Every protected operation goes through this path: resolve, require
// active, proceed with the returned identity.
func (s *Auther) ActiveIdentityFromToken(ctx context.Context, raw string) (Identity, error) {
	identity, err := s.IdentityFromToken(ctx, raw)
	if err != nil {
		return nil, err
	}

	if err := RequireActive(identity); err != nil {
		return nil, err
	}

	return identity, nil
}

// RequireActive is the access gate: it rejects identities whose account is
// flagged inactive and passes every other identity through unchanged. It is
// a pure predicate with no side effects.
func RequireActive(identity Identity) error {
	if identity == nil {
		return ErrIdentityNotFound
	}

	if aa, ok := identity.(activeAwareIdentity); ok && !aa.IsActive() {
		return ErrInactiveAccount
	}

	return nil
}

type activeAwareIdentity interface {
	IsActive() bool
}

var _ Authenticator = (*Auther)(nil)
