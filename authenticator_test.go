package jobboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jobboard "github.com/goliatone/go-jobboard"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIdentity is a simple implementation of Identity interface for testing
type TestIdentity struct {
	id       string
	username string
	email    string
	role     string
	inactive bool
}

func (t TestIdentity) ID() string       { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }
func (t TestIdentity) Role() string     { return t.role }
func (t TestIdentity) IsActive() bool   { return !t.inactive }

func newMockConfig() *MockConfig {
	mockConfig := new(MockConfig)
	mockConfig.On("GetSigningKey").Return("test-signing-key")
	mockConfig.On("GetTokenExpiration").Return(30)
	mockConfig.On("GetIssuer").Return("test-issuer")
	mockConfig.On("GetAudience").Return([]string{"test:audience"})
	return mockConfig
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	mockConfig := newMockConfig()

	authenticator := jobboard.NewAuthenticator(mockProvider, mockConfig)

	t.Run("Successful login", func(t *testing.T) {
		identity := TestIdentity{
			id:       uuid.New().String(),
			username: "testuser",
			email:    "test@example.com",
			role:     "employer",
		}

		mockProvider.On("VerifyIdentity", ctx, "test@example.com", "password123").
			Return(identity, nil).Once()

		token, err := authenticator.Login(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		parsedToken, err := jwt.ParseWithClaims(token, &jobboard.JWTClaims{}, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		})

		assert.NoError(t, err)
		assert.True(t, parsedToken.Valid)

		claims, ok := parsedToken.Claims.(*jobboard.JWTClaims)
		assert.True(t, ok)
		assert.Equal(t, "testuser", claims.Subject())
		assert.Equal(t, identity.ID(), claims.UserID())
		assert.Equal(t, "test-issuer", claims.RegisteredClaims.Issuer)
		assert.Equal(t, jwt.ClaimStrings{"test:audience"}, claims.RegisteredClaims.Audience)
		assert.NotEmpty(t, claims.RegisteredClaims.ID)
		assert.Equal(t, "employer", claims.UserRole)
	})

	t.Run("Failed login - invalid credentials", func(t *testing.T) {
		mockProvider.On("VerifyIdentity", ctx, "bad@example.com", "wrongpassword").
			Return(nil, jobboard.ErrInvalidCredentials).Once()

		token, err := authenticator.Login(ctx, "bad@example.com", "wrongpassword")

		assert.Error(t, err)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, jobboard.ErrInvalidCredentials)
	})

	t.Run("Unknown identifier and wrong password are indistinguishable", func(t *testing.T) {
		mockProvider.On("VerifyIdentity", ctx, "ghost@example.com", "whatever").
			Return(nil, jobboard.ErrInvalidCredentials).Once()
		mockProvider.On("VerifyIdentity", ctx, "real@example.com", "wrong").
			Return(nil, jobboard.ErrInvalidCredentials).Once()

		_, errUnknown := authenticator.Login(ctx, "ghost@example.com", "whatever")
		_, errWrong := authenticator.Login(ctx, "real@example.com", "wrong")

		assert.Equal(t, errUnknown, errWrong)
	})

	t.Run("Login blocked for inactive account", func(t *testing.T) {
		identity := TestIdentity{
			id:       uuid.New().String(),
			username: "dormant",
			email:    "dormant@example.com",
			role:     "applicant",
			inactive: true,
		}

		mockProvider.On("VerifyIdentity", ctx, "dormant@example.com", "password123").
			Return(identity, nil).Once()

		token, err := authenticator.Login(ctx, "dormant@example.com", "password123")

		assert.Error(t, err)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, jobboard.ErrInactiveAccount)
	})
}

func TestSessionFromToken(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	authenticator := jobboard.NewAuthenticator(mockProvider, newMockConfig())

	identity := TestIdentity{
		id:       uuid.New().String(),
		username: "testuser",
		email:    "test@example.com",
		role:     "applicant",
	}

	mockProvider.On("VerifyIdentity", ctx, "test@example.com", "password123").
		Return(identity, nil).Once()

	token, err := authenticator.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid token yields a session", func(t *testing.T) {
		session, err := authenticator.SessionFromToken(token)
		require.NoError(t, err)

		assert.Equal(t, identity.ID(), session.GetUserID())
		assert.Equal(t, "test-issuer", session.GetIssuer())

		obj, ok := session.(*jobboard.SessionObject)
		require.True(t, ok)
		assert.Equal(t, "testuser", obj.GetSubject())
		assert.Equal(t, jobboard.RoleApplicant, obj.GetRole())
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		_, err := authenticator.SessionFromToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestIdentityFromSession(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	authenticator := jobboard.NewAuthenticator(mockProvider, newMockConfig())

	identity := TestIdentity{
		id:       uuid.New().String(),
		username: "testuser",
		email:    "test@example.com",
		role:     "applicant",
	}

	mockProvider.On("VerifyIdentity", ctx, "test@example.com", "password123").
		Return(identity, nil).Once()

	token, err := authenticator.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	session, err := authenticator.SessionFromToken(token)
	require.NoError(t, err)

	t.Run("resolves the subject back to the directory", func(t *testing.T) {
		mockProvider.On("FindIdentityByIdentifier", ctx, "testuser").
			Return(identity, nil).Once()

		resolved, err := authenticator.IdentityFromSession(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, identity.ID(), resolved.ID())
	})

	t.Run("missing account bubbles up", func(t *testing.T) {
		mockProvider.On("FindIdentityByIdentifier", ctx, "testuser").
			Return(nil, jobboard.ErrIdentityNotFound).Once()

		_, err := authenticator.IdentityFromSession(ctx, session)
		assert.ErrorIs(t, err, jobboard.ErrIdentityNotFound)
	})
}

func TestActiveIdentityFromToken(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	authenticator := jobboard.NewAuthenticator(mockProvider, newMockConfig())

	active := TestIdentity{
		id:       uuid.New().String(),
		username: "active",
		role:     "applicant",
	}
	dormant := TestIdentity{
		id:       uuid.New().String(),
		username: "dormant",
		role:     "applicant",
		inactive: true,
	}

	mockProvider.On("VerifyIdentity", ctx, "active", "password123").
		Return(active, nil).Once()

	token, err := authenticator.Login(ctx, "active", "password123")
	require.NoError(t, err)

	t.Run("active account passes the gate", func(t *testing.T) {
		mockProvider.On("FindIdentityByIdentifier", ctx, "active").
			Return(active, nil).Once()

		resolved, err := authenticator.ActiveIdentityFromToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, active.ID(), resolved.ID())
	})

	t.Run("account disabled after issuance is rejected", func(t *testing.T) {
		// token is still cryptographically valid, directory state wins
		mockProvider.On("FindIdentityByIdentifier", ctx, "active").
			Return(dormant, nil).Once()

		_, err := authenticator.ActiveIdentityFromToken(ctx, token)
		assert.ErrorIs(t, err, jobboard.ErrInactiveAccount)
	})
}

func TestRequireActive(t *testing.T) {
	t.Run("active identity passes", func(t *testing.T) {
		err := jobboard.RequireActive(TestIdentity{id: "1", username: "a"})
		assert.NoError(t, err)
	})

	t.Run("inactive identity rejected", func(t *testing.T) {
		err := jobboard.RequireActive(TestIdentity{id: "1", username: "a", inactive: true})
		assert.ErrorIs(t, err, jobboard.ErrInactiveAccount)
	})

	t.Run("nil identity rejected", func(t *testing.T) {
		err := jobboard.RequireActive(nil)
		assert.Error(t, err)
	})
}

func TestTokenExpiresWithConfiguredTTL(t *testing.T) {
	mockProvider := new(MockIdentityProvider)
	authenticator := jobboard.NewAuthenticator(mockProvider, newMockConfig())

	issued := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	authenticator.WithTokenService(jobboard.NewTokenService(
		[]byte("test-signing-key"),
		30,
		"test-issuer",
		jwt.ClaimStrings{"test:audience"},
		nil,
		jobboard.WithTokenTimeFunc(func() time.Time { return issued }),
	))

	ctx := context.Background()
	identity := TestIdentity{id: uuid.New().String(), username: "clock", role: "applicant"}

	mockProvider.On("VerifyIdentity", ctx, "clock", "pw1234567890").
		Return(identity, nil).Once()

	token, err := authenticator.Login(ctx, "clock", "pw1234567890")
	require.NoError(t, err)

	claims, err := authenticator.ValidateClaims(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(30*time.Minute).Unix(), claims.Expires().Unix())
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func TestWithLoggerKeepsInjectedTokenService(t *testing.T) {
	mockProvider := new(MockIdentityProvider)

	t.Run("injected service survives a logger change", func(t *testing.T) {
		custom := newTestTokenService(5, time.Now)

		authenticator := jobboard.NewAuthenticator(mockProvider, newMockConfig()).
			WithTokenService(custom).
			WithLogger(noopLogger{})

		assert.Same(t, custom, authenticator.TokenService())
	})

	t.Run("default service is rebuilt with the new logger", func(t *testing.T) {
		authenticator := jobboard.NewAuthenticator(mockProvider, newMockConfig())
		initial := authenticator.TokenService()

		authenticator.WithLogger(noopLogger{})
		assert.NotSame(t, initial, authenticator.TokenService())
	})
}
