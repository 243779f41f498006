package ui

import (
	"context"
	"errors"
	"net/http"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/middleware"
	"appfiy/backoffice/internal/models/dtos"
	"appfiy/backoffice/internal/services"

	"github.com/go-chi/chi/v5"
)

type ThemeLoader interface {
	Load(ctx context.Context, themeID uint) (*dtos.ThemeView, error)
}

// AssignComponentHandler renders GET /admin/themes/{theme_id}/assign-component:
// one collapsible panel per page with its settings and components, edited
// in place through the inline update endpoints.
func AssignComponentHandler(themes ThemeLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		themeID, err := common.ParseID(chi.URLParam(r, "theme_id"))
		if err != nil {
			http.Error(w, "Invalid theme id", http.StatusBadRequest)
			return
		}

		view, err := themes.Load(r.Context(), themeID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				http.Error(w, "Theme not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to load theme", http.StatusInternalServerError)
			return
		}

		data := map[string]interface{}{
			"PageTitle":           "Assign components: " + view.Name,
			"UITheme":             middleware.GetUITheme(r.Context()),
			"Theme":               view,
			"ComponentUpdateURL":  "/admin/theme/assign-component/update",
			"PageInlineUpdateURL": "/admin/theme/page/inline-update",
			"PageImageUploadURL":  "/admin/theme/page/inline-image-upload",
			"PageDeleteURLPrefix": "/admin/theme/page/",
		}
		_ = RenderTemplate(w, "theme/assign_component.html", data)
	}
}
