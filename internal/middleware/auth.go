package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"appfiy/backoffice/internal/auth"
	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/logging"
)

var (
	errMissingCredentials = errors.New("missing credentials")
	errInvalidAPIKey      = errors.New("invalid api key")
)

// AdminCookieName carries the admin token for the server-rendered pages,
// where the browser cannot attach headers to a navigation.
const AdminCookieName = "admin_token"

// AdminAuth accepts a static X-API-Key from ADMIN_API_KEYS, a bearer token
// signed with ADMIN_JWT_SECRET, or the same token in the admin_token cookie,
// and stores the resolved claims on the request context.
func AdminAuth(apiKeys []string, signer *auth.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var (
				claims auth.AdminClaims
				err    error
			)

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				claims, err = signer.ParseToken(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))

			case apiKey != "":
				if matchAPIKey(apiKeys, apiKey) {
					claims = &auth.APIKeyClaims{KeyHint: keyHint(apiKey)}
				} else {
					err = errInvalidAPIKey
				}

			default:
				if cookie, cerr := r.Cookie(AdminCookieName); cerr == nil && cookie.Value != "" {
					claims, err = signer.ParseToken(cookie.Value)
				} else {
					err = errMissingCredentials
				}
			}

			if err != nil {
				logging.Warn("Admin authentication failed", "path", r.URL.Path, "error", err.Error())
				common.RespondError(w, time.Now(), errors.New(constants.MsgUnauthorized), constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			ctx := auth.SetAdminClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AJAXHeader must accompany the admin page's fetch calls. Browsers only let
// a cross-site page set it after a CORS preflight, which the admin routes
// never grant, so cookie-authenticated GET edits cannot be forged.
const (
	AJAXHeader      = "X-Requested-With"
	AJAXHeaderValue = "XMLHttpRequest"
)

// RequireAJAX rejects requests without the AJAXHeader marker.
func RequireAJAX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AJAXHeader) != AJAXHeaderValue {
			logging.Warn("Admin AJAX request without marker header", "path", r.URL.Path, "origin", r.Header.Get("Origin"))
			common.RespondError(w, time.Now(), errors.New(constants.MsgCrossSiteRequest), constants.MsgCrossSiteRequest, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole must run after AdminAuth.
func RequireRole(required constants.AdminRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetAdminClaims(r.Context())
			if claims == nil {
				common.RespondError(w, time.Now(), errors.New(constants.MsgUnauthorized), constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			if !claims.Role().Satisfies(required) {
				logging.Warn("Admin role rejected",
					"subject", claims.Subject(), "role", claims.Role(), "required", required)
				common.RespondError(w, time.Now(), errors.New(constants.MsgForbidden), constants.MsgForbidden, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func matchAPIKey(keys []string, candidate string) bool {
	for _, k := range keys {
		if k != "" && subtle.ConstantTimeCompare([]byte(k), []byte(candidate)) == 1 {
			return true
		}
	}
	return false
}

func keyHint(key string) string {
	if len(key) <= 4 {
		return key
	}
	return key[len(key)-4:]
}
