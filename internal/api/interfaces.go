package api

import (
	"context"
	"io"

	"appfiy/backoffice/internal/constants"
	"appfiy/backoffice/internal/models/dtos"
	gormModels "appfiy/backoffice/internal/models/gorm"
)

// Handlers depend on these narrow views of the services so tests can swap
// in hand-written fakes.

type ThemeLoader interface {
	Load(ctx context.Context, themeID uint) (*dtos.ThemeView, error)
}

type PageDeleter interface {
	DeletePage(ctx context.Context, pageID uint) error
}

type InlineUpdater interface {
	UpdateField(ctx context.Context, kind constants.EntityKind, id uint, field, raw string, isChecked *string) (*dtos.InlineUpdateResult, error)
}

type StaticImageUploader interface {
	Upload(ctx context.Context, pageID uint, file io.Reader) (*dtos.StaticImageUploadResult, error)
}

type LayoutTypeManager interface {
	List(ctx context.Context, withTrashed bool) ([]gormModels.LayoutType, error)
	Get(ctx context.Context, id uint) (*gormModels.LayoutType, error)
	Create(ctx context.Context, req dtos.LayoutTypeReq) (*gormModels.LayoutType, error)
	Update(ctx context.Context, id uint, req dtos.LayoutTypeReq) (*gormModels.LayoutType, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) (*gormModels.LayoutType, error)
}

type VersionMappingManager interface {
	ListApps(ctx context.Context) ([]gormModels.MobileSupportApp, error)
	CreateApp(ctx context.Context, req dtos.MobileSupportAppReq) (*gormModels.MobileSupportApp, error)
	ListMappings(ctx context.Context, appID uint) ([]gormModels.MobileVersionMapping, error)
	GetMapping(ctx context.Context, id uint) (*gormModels.MobileVersionMapping, error)
	CreateMapping(ctx context.Context, appID uint, req dtos.VersionMappingReq) (*gormModels.MobileVersionMapping, error)
	UpdateMapping(ctx context.Context, id uint, req dtos.VersionMappingReq) (*gormModels.MobileVersionMapping, error)
}

type VersionChecker interface {
	Evaluate(ctx context.Context, appID uint, version string, code *int) (*dtos.CompatibilityResult, error)
}

type BuildNotifier interface {
	Notify(ctx context.Context, req dtos.BuildNotificationReq) (*dtos.BuildNotificationResult, error)
	ListDomains(ctx context.Context) ([]dtos.BuildDomainView, error)
	UpdatePushURLs(ctx context.Context, id uint, req dtos.PushURLsReq) error
}
