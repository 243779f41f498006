package middleware

import (
	"context"
	"net/http"
)

type uiThemeKey struct{}

var validUIThemes = map[string]bool{
	"light":         true,
	"dark":          true,
	"high-contrast": true,
}

// UIThemeMiddleware reads the admin's colour scheme preference for the
// server-rendered pages. Unknown values fall back to light.
func UIThemeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme := "light"
		if cookie, err := r.Cookie("theme_preference"); err == nil && validUIThemes[cookie.Value] {
			theme = cookie.Value
		}

		ctx := context.WithValue(r.Context(), uiThemeKey{}, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUITheme(ctx context.Context) string {
	if theme, ok := ctx.Value(uiThemeKey{}).(string); ok {
		return theme
	}
	return "light"
}
