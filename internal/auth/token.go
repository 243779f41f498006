package auth

import (
	"errors"
	"fmt"
	"time"

	"appfiy/backoffice/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "appfiy-backoffice"

var ErrInvalidToken = errors.New("invalid token")

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenSigner issues and validates admin bearer tokens (HS256).
type TokenSigner struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secretKey: []byte(secret), now: time.Now}
}

// IssueToken signs a token for subject with the given role and lifetime.
func (s *TokenSigner) IssueToken(subject string, role constants.AdminRole, ttl time.Duration) (string, error) {
	if len(s.secretKey) == 0 {
		return "", errors.New("admin jwt secret is not configured")
	}
	if !role.Satisfies(constants.RoleEditor) {
		return "", fmt.Errorf("unknown admin role %q", role)
	}

	now := s.now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates signature, issuer and expiry and returns the claims.
func (s *TokenSigner) ParseToken(tokenString string) (*JWTClaims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrInvalidToken
	}

	parsed := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	role := constants.AdminRole(parsed.Role)
	if !role.Satisfies(constants.RoleEditor) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, parsed.Role)
	}
	return &JWTClaims{SubjectValue: parsed.Subject, RoleValue: role, TokenID: parsed.ID}, nil
}
