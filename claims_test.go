package jobboard_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jobboard "github.com/goliatone/go-jobboard"
	"github.com/stretchr/testify/assert"
)

func TestJWTClaims(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	claims := &jobboard.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acme",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
		},
		UID:      "user-123",
		UserRole: "employer",
	}

	t.Run("accessors", func(t *testing.T) {
		assert.Equal(t, "acme", claims.Subject())
		assert.Equal(t, "user-123", claims.UserID())
		assert.Equal(t, "employer", claims.Role())
		assert.Equal(t, now, claims.IssuedAt())
		assert.Equal(t, now.Add(30*time.Minute), claims.Expires())
	})

	t.Run("role checks", func(t *testing.T) {
		assert.True(t, claims.HasRole("employer"))
		assert.False(t, claims.HasRole("applicant"))
		assert.True(t, claims.CanPostJobs())
		assert.True(t, claims.CanReviewApplications())
	})

	t.Run("uid falls back to subject", func(t *testing.T) {
		c := &jobboard.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
			UserRole:         "applicant",
		}
		assert.Equal(t, "alice", c.UserID())
		assert.False(t, c.CanPostJobs())
	})

	t.Run("zero times", func(t *testing.T) {
		c := &jobboard.JWTClaims{}
		assert.True(t, c.Expires().IsZero())
		assert.True(t, c.IssuedAt().IsZero())
	})
}
