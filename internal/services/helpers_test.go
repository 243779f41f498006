package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/metrics"
	gormModels "appfiy/backoffice/internal/models/gorm"
	"appfiy/backoffice/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

type themeFixture struct {
	db      *gorm.DB
	repo    *repositories.ThemeRepository
	cache   *common.CacheService
	metrics *metrics.MetricsRegistry
	themes  *ThemeService
	theme   *gormModels.Theme
	home    *gormModels.ThemePage
	splash  *gormModels.ThemePage
	slider  *gormModels.ThemeComponent
	banner  *gormModels.ThemeComponent
}

// newThemeFixture seeds one theme with a dynamic home page holding two
// components and a static splash page without an image.
func newThemeFixture(t *testing.T) *themeFixture {
	t.Helper()
	ctx := context.Background()

	gdb, _ := testutil.NewTestDB(t)
	repo := repositories.NewThemeRepository(gdb)
	cache := common.NewCacheService(60, 120)
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	f := &themeFixture{
		db:      gdb,
		repo:    repo,
		cache:   cache,
		metrics: reg,
		themes:  NewThemeService(repo, cache, reg, "/uploads/", time.Minute),
	}

	f.theme = &gormModels.Theme{LayoutTypeID: 1, Name: "Classic", Slug: "classic"}
	mustSeed(t, "theme", repo.CreateTheme(ctx, f.theme))

	f.home = &gormModels.ThemePage{ThemeID: f.theme.ID, Slug: "home", Name: "Home", SortOrder: 1, PersistentFooterButtons: 2}
	f.splash = &gormModels.ThemePage{ThemeID: f.theme.ID, Slug: "splash", Name: "Splash", SortOrder: 0}
	mustSeed(t, "home page", repo.CreatePage(ctx, f.home))
	mustSeed(t, "splash page", repo.CreatePage(ctx, f.splash))
	_, err := repo.UpdatePageColumn(ctx, f.splash.ID, "screen_status", "static")
	mustSeed(t, "splash status", err)

	f.slider = &gormModels.ThemeComponent{ThemePageID: f.home.ID, DisplayName: "Slider", SortOrdering: 2, CloneComponent: strPtr("slider-v1")}
	f.banner = &gormModels.ThemeComponent{ThemePageID: f.home.ID, DisplayName: "Banner", SortOrdering: 1, Selected: true}
	mustSeed(t, "slider", repo.CreateComponent(ctx, f.slider))
	mustSeed(t, "banner", repo.CreateComponent(ctx, f.banner))

	return f
}

func mustSeed(t *testing.T, what string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Failed to seed %s: %v", what, err)
	}
}

// fieldErrors fails the test unless err is a *ValidationError.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T (%v)", err, err)
	}
	return verr.Fields
}
