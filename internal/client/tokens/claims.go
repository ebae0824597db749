package tokens

import (
	"fmt"

	"github.com/dmitrijs2005/clubhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the client's view of an access token's payload. The signature is
// not verified: the client only displays these values and uses the expiry as
// a hint.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ParseClaims decodes the claims of a JWT access token without verifying it.
func ParseClaims(token string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}
