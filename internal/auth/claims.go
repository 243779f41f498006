package auth

import "appfiy/backoffice/internal/constants"

// AdminClaims is what the admin middleware puts on the request context.
// Both credential types resolve to it.
type AdminClaims interface {
	Subject() string
	Role() constants.AdminRole
	Source() string
}

// JWTClaims come from a bearer token signed with ADMIN_JWT_SECRET.
type JWTClaims struct {
	SubjectValue string
	RoleValue    constants.AdminRole
	TokenID      string
}

func (c *JWTClaims) Subject() string           { return c.SubjectValue }
func (c *JWTClaims) Role() constants.AdminRole { return c.RoleValue }
func (c *JWTClaims) Source() string            { return "JWT" }

// APIKeyClaims come from a static X-API-Key. Keys are configured
// out of band and always carry the admin role.
type APIKeyClaims struct {
	KeyHint string
}

func (c *APIKeyClaims) Subject() string           { return "api-key:" + c.KeyHint }
func (c *APIKeyClaims) Role() constants.AdminRole { return constants.RoleAdmin }
func (c *APIKeyClaims) Source() string            { return "API_KEY" }
