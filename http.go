package jobboard

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-jobboard/middleware/jwtware"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
)

// HTTPAuthenticator is the surface controllers use to protect routes and
// mint tokens for incoming credentials.
type HTTPAuthenticator interface {
	Login(ctx router.Context, payload LoginPayload) (string, error)
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
	ActiveAccount() router.MiddlewareFunc
	TokenTTLSeconds() int
}

type RouteAuthenticator struct {
	auth             Authenticator
	cfg              Config
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

var _ HTTPAuthenticator = (*RouteAuthenticator)(nil)

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

// TokenTTLSeconds reports the configured token lifetime, expiration is
// configured in minutes.
func (a RouteAuthenticator) TokenTTLSeconds() int {
	return a.cfg.GetTokenExpiration() * 60
}

func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler:   errorHandler,
		TokenValidator: tokenValidatorAdapter{auth: a.auth},
		SigningKey: jwtware.SigningKey{
			Key:    []byte(cfg.GetSigningKey()),
			JWTAlg: cfg.GetSigningMethod(),
		},
		AuthScheme:  cfg.GetAuthScheme(),
		ContextKey:  cfg.GetContextKey(),
		TokenLookup: cfg.GetTokenLookup(),
	})
}

// ActiveAccount resolves the validated claims back to a directory record
// and rejects requests from disabled accounts. It must run after
// ProtectedRoute so the claims are present in locals.
func (a *RouteAuthenticator) ActiveAccount() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			claims, ok := GetRouterClaims(ctx, a.cfg.GetContextKey())
			if !ok {
				return a.AuthErrorHandler(ctx, ErrUnableToMapClaims)
			}

			session, err := sessionFromAuthClaims(claims)
			if err != nil {
				return a.AuthErrorHandler(ctx, err)
			}

			identity, err := a.auth.IdentityFromSession(ctx.Context(), session)
			if err != nil {
				return a.AuthErrorHandler(ctx, err)
			}

			if err := RequireActive(identity); err != nil {
				return a.ErrorHandler(ctx, err)
			}

			ctx.Locals(IdentityLocalsKey, identity)

			return ctx.Next()
		}
	}
}

func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) (string, error) {
	token, err := a.auth.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}

	return token, nil
}

// MakeAPIAuthErrorHandler normalizes middleware failures into the 401
// contract bearer clients expect, including the WWW-Authenticate header.
func (a *RouteAuthenticator) MakeAPIAuthErrorHandler() func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		return a.AuthErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error, rejecting request",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	c.SetHeader("WWW-Authenticate", `Bearer`)

	return c.JSON(router.StatusUnauthorized, errorResponse(richErr))
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		if repository.IsRecordNotFound(err) {
			richErr = errors.Wrap(err, errors.CategoryNotFound, "Record not found").
				WithCode(errors.CodeNotFound)
		} else {
			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}
	}

	a.Logger.Info(
		"Middleware error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryAuth:
		return a.AuthErrorHandler(c, richErr)
	default:
		return c.JSON(statusFromError(richErr), errorResponse(richErr))
	}
}

// tokenValidatorAdapter bridges the authenticator to the middleware's
// local AuthClaims mirror. The structured claims satisfy both interfaces,
// so the same value ends up in locals for the active-account gate.
type tokenValidatorAdapter struct {
	auth Authenticator
}

func (t tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := t.auth.ValidateClaims(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func statusFromError(err *errors.Error) int {
	if err == nil {
		return router.StatusInternalServerError
	}
	if err.Code > 0 {
		return err.Code
	}
	return router.StatusInternalServerError
}

func errorResponse(err *errors.Error) map[string]any {
	body := map[string]any{
		"detail": err.Message,
	}
	if err.TextCode != "" {
		body["code"] = err.TextCode
	}
	return body
}
