package routes

import (
	"appfiy/backoffice/internal/api"
	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	svcs := deps.Services
	adminAuth := middleware.AdminAuth(deps.Config.AdminAPIKeys, deps.Signer)

	// 1 req/s with a burst of 10 per client IP for unauthenticated callers
	mobileLimiter := middleware.NewRateLimiter(1, 10, "127.0.0.1")
	buildLimiter := middleware.NewRateLimiter(1, 10, "127.0.0.1")

	r.Route("/api/v1", func(v1 chi.Router) {

		// Public: mobile clients and the build pipeline
		v1.With(mobileLimiter.Middleware).Post("/mobile/version-check", api.VersionCheckHandler(svcs.Compatibility))
		v1.With(buildLimiter.Middleware).Post("/build/notification", api.BuildNotificationHandler(svcs.Builds))

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(adminAuth)

			// Editors may read and edit theme content
			admin.Group(func(editor chi.Router) {
				editor.Use(middleware.RequireRole(constants.RoleEditor))

				editor.Get("/themes/{theme_id}/pages", api.ThemePagesHandler(svcs.Themes))

				editor.Get("/layout-types", api.ListLayoutTypesHandler(svcs.LayoutTypes))
				editor.Get("/layout-types/{id}", api.GetLayoutTypeHandler(svcs.LayoutTypes))
				editor.Get("/mobile-apps", api.ListMobileAppsHandler(svcs.Mappings))
				editor.Get("/mobile-apps/{app_id}/version-mappings", api.ListVersionMappingsHandler(svcs.Mappings))
				editor.Get("/version-mappings/{id}", api.GetVersionMappingHandler(svcs.Mappings))
			})

			// Admin-only: catalogue and delivery configuration
			admin.Group(func(adm chi.Router) {
				adm.Use(middleware.RequireRole(constants.RoleAdmin))

				adm.Post("/layout-types", api.CreateLayoutTypeHandler(svcs.LayoutTypes))
				adm.Put("/layout-types/{id}", api.UpdateLayoutTypeHandler(svcs.LayoutTypes))
				adm.Delete("/layout-types/{id}", api.DeleteLayoutTypeHandler(svcs.LayoutTypes))
				adm.Post("/layout-types/{id}/restore", api.RestoreLayoutTypeHandler(svcs.LayoutTypes))

				adm.Post("/mobile-apps", api.CreateMobileAppHandler(svcs.Mappings))
				adm.Post("/mobile-apps/{app_id}/version-mappings", api.CreateVersionMappingHandler(svcs.Mappings))
				adm.Put("/version-mappings/{id}", api.UpdateVersionMappingHandler(svcs.Mappings))

				adm.Get("/build-domains", api.ListBuildDomainsHandler(svcs.Builds))
				adm.Put("/build-domains/{id}/push-urls", api.UpdatePushURLsHandler(svcs.Builds))
			})
		})
	})
}
