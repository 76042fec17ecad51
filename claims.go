package jobboard

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured JWT claims with role checking
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	HasRole(role string) bool
	CanPostJobs() bool
	CanReviewApplications() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Role returns the account role carried by the token
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the token asserts a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// CanPostJobs checks if the token's role may manage job postings
func (c *JWTClaims) CanPostJobs() bool {
	return UserRole(c.UserRole).CanPostJobs()
}

// CanReviewApplications checks if the token's role may review applications
func (c *JWTClaims) CanReviewApplications() bool {
	return UserRole(c.UserRole).CanReviewApplications()
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
