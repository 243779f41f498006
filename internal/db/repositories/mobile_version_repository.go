package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appfiy/backoffice/internal/common"
	gormModels "appfiy/backoffice/internal/models/gorm"

	"gorm.io/gorm"
)

// PrepareVersionMapping is the before-save transform of
// appza_mobile_version_mapping. It derives mobile_version_code from
// mobile_version and stamps the timestamps. A version that does not parse
// aborts the save with *common.VersionParseError.
func PrepareVersionMapping(m *gormModels.MobileVersionMapping, now time.Time, creating bool) error {
	code, err := common.EncodeVersion(m.MobileVersion)
	if err != nil {
		return err
	}
	m.MobileVersionCode = code

	if creating || m.CreatedAt == nil {
		m.CreatedAt = &now
	}
	m.UpdatedAt = &now
	return nil
}

// versionMappingColumns are written on update. Listing them makes GORM
// write false and zero values too.
var versionMappingColumns = []string{
	"mobile_version",
	"mobile_version_code",
	"minimum_plugin_version",
	"latest_plugin_version",
	"force_update",
	"is_active",
	"optional_message",
	"updated_at",
}

// MobileVersionRepository handles mobile support apps and their version
// mappings. Mappings are never deleted.
type MobileVersionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMobileVersionRepository(db *gorm.DB) *MobileVersionRepository {
	return &MobileVersionRepository{db: db, now: time.Now}
}

func (r *MobileVersionRepository) ListApps(ctx context.Context) ([]gormModels.MobileSupportApp, error) {
	var apps []gormModels.MobileSupportApp
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list mobile apps: %w", err)
	}
	return apps, nil
}

func (r *MobileVersionRepository) GetApp(ctx context.Context, id uint) (*gormModels.MobileSupportApp, error) {
	var app gormModels.MobileSupportApp
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch mobile app: %w", err)
	}
	return &app, nil
}

func (r *MobileVersionRepository) PackageNameExists(ctx context.Context, packageName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.MobileSupportApp{}).
		Where("package_name = ?", packageName).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check package name: %w", err)
	}
	return count > 0, nil
}

func (r *MobileVersionRepository) CreateApp(ctx context.Context, app *gormModels.MobileSupportApp) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("failed to create mobile app: %w", err)
	}
	return nil
}

func (r *MobileVersionRepository) ListMappings(ctx context.Context, appID uint) ([]gormModels.MobileVersionMapping, error) {
	var rows []gormModels.MobileVersionMapping
	err := r.db.WithContext(ctx).
		Where("mobile_app_id = ?", appID).
		Order("mobile_version_code DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list version mappings: %w", err)
	}
	return rows, nil
}

func (r *MobileVersionRepository) GetMapping(ctx context.Context, id uint) (*gormModels.MobileVersionMapping, error) {
	var row gormModels.MobileVersionMapping
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch version mapping: %w", err)
	}
	return &row, nil
}

// CreateMapping applies PrepareVersionMapping and inserts the row.
func (r *MobileVersionRepository) CreateMapping(ctx context.Context, m *gormModels.MobileVersionMapping) error {
	if err := PrepareVersionMapping(m, r.now(), true); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create version mapping: %w", err)
	}
	return nil
}

// UpdateMapping applies PrepareVersionMapping and writes the editable
// columns. It reports false when the row does not exist.
func (r *MobileVersionRepository) UpdateMapping(ctx context.Context, m *gormModels.MobileVersionMapping) (bool, error) {
	if err := PrepareVersionMapping(m, r.now(), false); err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).
		Model(&gormModels.MobileVersionMapping{}).
		Where("id = ?", m.ID).
		Select(versionMappingColumns).
		Updates(m)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update version mapping: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
