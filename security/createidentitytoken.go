package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AdminIdentity struct {
	CompanyID string
	Name      string
}

type Identity struct {
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken issues the HS256 session token handed out after a
// successful admin login. The secret is configured base64-encoded.
func CreateIdentityToken(identity *AdminIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: Identity{
			CompanyID: identity.CompanyID,
			Name:      identity.Name,
			Role:      "ADMIN",
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fichaje",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}
