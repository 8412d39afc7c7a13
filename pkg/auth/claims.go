package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims is the subset of the auth provider's JWT the storefront
// cares about: the account id (sub) and the signed-in email.
type AccessTokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the account identifier carried in the subject claim.
func (c *AccessTokenClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
