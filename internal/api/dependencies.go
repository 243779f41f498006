package api

import (
	"time"

	"appfiy/backoffice/internal/auth"
	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/config"
	"appfiy/backoffice/internal/db/repositories"
	"appfiy/backoffice/internal/metrics"
	"appfiy/backoffice/internal/providers"
	"appfiy/backoffice/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Themes       *repositories.ThemeRepository
	LayoutTypes  *repositories.LayoutTypeRepository
	Mobile       *repositories.MobileVersionRepository
	VersionRules *repositories.VersionRuleRepo
	BuildDomains *repositories.BuildDomainRepo
}

type Services struct {
	Cache         common.CacheInterface
	Themes        *services.ThemeService
	Inline        *services.InlineUpdateService
	StaticImages  *services.StaticImageService
	Compatibility *services.CompatibilityService
	Mappings      *services.VersionMappingService
	LayoutTypes   *services.LayoutTypeService
	Builds        *services.BuildNotificationService
}

type Dependencies struct {
	Config   *config.Config
	DB       *sqlx.DB
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Signer   *auth.TokenSigner
	UpSince  time.Time
}

// InitDependencies wires repositories and services. gorm carries the write
// model; sqlx carries the read-mostly paths (version rules, build domains).
func InitDependencies(
	cfg *config.Config,
	sqlDB *sqlx.DB,
	gormDB *gorm.DB,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {

	repos := &Repositories{
		Themes:       repositories.NewThemeRepository(gormDB),
		LayoutTypes:  repositories.NewLayoutTypeRepository(gormDB),
		Mobile:       repositories.NewMobileVersionRepository(gormDB),
		VersionRules: repositories.NewVersionRuleRepo(sqlDB),
		BuildDomains: repositories.NewBuildDomainRepo(sqlDB),
	}

	storage := common.NewLocalFileStorage(cfg.UploadDir)

	themeSvc := services.NewThemeService(repos.Themes, cache, metricsReg, cfg.ImagePublicPath, cfg.ThemeCacheTTL)
	compatSvc := services.NewCompatibilityService(repos.VersionRules, cache, metricsReg, services.CompatibilityPolicy{
		Match:     cfg.VersionMatchPolicy,
		Unmatched: cfg.VersionUnmatchedPolicy,
		CacheTTL:  cfg.CompatibilityCacheTTL,
	})

	svcs := &Services{
		Cache:  cache,
		Themes: themeSvc,
		Inline: services.NewInlineUpdateService(repos.Themes, themeSvc, metricsReg),
		StaticImages: services.NewStaticImageService(repos.Themes, themeSvc, storage, metricsReg, services.StaticImageOptions{
			PublicPath:    cfg.ImagePublicPath,
			MaxWidth:      cfg.StaticImageMaxWidth,
			MaxBytes:      cfg.UploadMaxBytes,
			MaxPixels:     cfg.StaticImageMaxPixels,
			RequireStatic: cfg.UploadRequireStatic,
		}),
		Compatibility: compatSvc,
		Mappings:      services.NewVersionMappingService(repos.Mobile, compatSvc),
		LayoutTypes:   services.NewLayoutTypeService(repos.LayoutTypes),
		Builds: services.NewBuildNotificationService(
			repos.BuildDomains,
			providers.NewHTTPPushProvider(cfg.PushTimeout),
			metricsReg,
		),
	}

	return &Dependencies{
		Config:   cfg,
		DB:       sqlDB,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		Signer:   auth.NewTokenSigner(cfg.AdminJWTSecret),
		UpSince:  time.Now(),
	}, nil
}
