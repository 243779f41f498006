package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"appfiy/backoffice/internal/api"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/middleware"
	"appfiy/backoffice/internal/ui"

	"github.com/go-chi/chi/v5"
)

// RegisterUIRoutes registers the server-rendered admin pages, the inline
// edit endpoints they call, and the static and upload file servers.
func RegisterUIRoutes(r chi.Router, deps *api.Dependencies) {
	svcs := deps.Services

	// Static file serving (CSS, JS) with correct MIME types
	r.Handle("/static/*", http.StripPrefix("/static/", mimeTypeMiddleware(http.FileServer(ui.StaticFS()))))

	// Uploaded static screen images, unless a CDN serves them
	if !strings.HasPrefix(deps.Config.ImagePublicPath, "http") {
		publicPath := "/" + strings.Trim(deps.Config.ImagePublicPath, "/") + "/"
		uploads := http.StripPrefix(publicPath, mimeTypeMiddleware(http.FileServer(http.Dir(deps.Config.UploadDir))))
		r.Handle(publicPath+"*", uploads)
	}

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.AdminAuth(deps.Config.AdminAPIKeys, deps.Signer))
		admin.Use(middleware.RequireRole(constants.RoleEditor))
		admin.Use(middleware.UIThemeMiddleware)

		admin.Get("/themes/{theme_id}/assign-component", ui.AssignComponentHandler(svcs.Themes))

		// AJAX endpoints used by the assign-component page
		admin.Group(func(ajax chi.Router) {
			ajax.Use(middleware.RequireAJAX)
			ajax.Get("/theme/assign-component/update", api.ComponentInlineUpdateHandler(svcs.Inline))
			ajax.Get("/theme/page/inline-update", api.PageInlineUpdateHandler(svcs.Inline))
			ajax.Post("/theme/page/inline-image-upload", api.StaticImageUploadHandler(svcs.StaticImages, deps.Config.UploadMaxBytes))
			ajax.Delete("/theme/page/{id}", api.DeletePageHandler(svcs.Themes))
		})
	})
}

// mimeTypeMiddleware wraps a file server, sets correct MIME types and stops
// browsers from sniffing uploaded content.
func mimeTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ext := filepath.Ext(r.URL.Path)

		// Set correct MIME type for .mjs files (ES modules)
		if strings.EqualFold(ext, ".mjs") {
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// directory listings are never served
		if strings.HasSuffix(r.URL.Path, "/") || r.URL.Path == "" {
			http.NotFound(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
