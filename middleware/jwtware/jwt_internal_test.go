package jwtware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyfuncOptionsRefreshErrorHandlerIsSafe(t *testing.T) {
	opts := keyfuncOptions(nil)
	require.NotNil(t, opts.RefreshErrorHandler)
	require.NotPanics(t, func() {
		opts.RefreshErrorHandler(errors.New("refresh failed"))
	})

	require.Equal(t, time.Hour, opts.RefreshInterval)
	require.Equal(t, 5*time.Minute, opts.RefreshRateLimit)
	require.Equal(t, 10*time.Second, opts.RefreshTimeout)
	require.True(t, opts.RefreshUnknownKID)
}

func TestGetExtractorsParsesLookupString(t *testing.T) {
	extractors := GetExtractors("header:Authorization,cookie:jwt,query:auth_token,param:token")
	assert.Len(t, extractors, 4)

	extractors = GetExtractors("header:Authorization")
	assert.Len(t, extractors, 1)
}

type stubClaims struct {
	subject string
	role    string
}

func (s stubClaims) Subject() string             { return s.subject }
func (s stubClaims) UserID() string              { return s.subject }
func (s stubClaims) Role() string                { return s.role }
func (s stubClaims) HasRole(role string) bool    { return s.role == role }
func (s stubClaims) CanPostJobs() bool           { return s.role == "employer" }
func (s stubClaims) CanReviewApplications() bool { return s.role == "employer" }

func TestPerformAuthorizationChecks(t *testing.T) {
	employer := stubClaims{subject: "acme", role: "employer"}
	applicant := stubClaims{subject: "alice", role: "applicant"}

	t.Run("no rbac config skips all checks", func(t *testing.T) {
		assert.NoError(t, performAuthorizationChecks(applicant, Config{}))
	})

	t.Run("required role must match", func(t *testing.T) {
		cfg := Config{RequiredRole: "employer"}
		assert.NoError(t, performAuthorizationChecks(employer, cfg))
		assert.Error(t, performAuthorizationChecks(applicant, cfg))
	})

	t.Run("custom role checker runs after required role", func(t *testing.T) {
		cfg := Config{
			RequiredRole: "employer",
			RoleChecker: func(claims AuthClaims, role string) bool {
				return claims.CanPostJobs()
			},
		}
		assert.NoError(t, performAuthorizationChecks(employer, cfg))
	})
}

func TestSigningKeyFuncChecksAlgorithm(t *testing.T) {
	fn := signingKeyFunc(SigningKey{JWTAlg: "HS256", Key: []byte("k")})
	require.NotNil(t, fn)
}
