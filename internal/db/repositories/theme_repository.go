package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormModels "appfiy/backoffice/internal/models/gorm"

	"gorm.io/gorm"
)

// ThemeRepository handles themes, theme pages and theme components.
// Column names handed to the Update*Column methods come from the inline
// field table in the services package, never from request input.
type ThemeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewThemeRepository(db *gorm.DB) *ThemeRepository {
	return &ThemeRepository{db: db, now: time.Now}
}

func (r *ThemeRepository) GetTheme(ctx context.Context, id uint) (*gormModels.Theme, error) {
	var theme gormModels.Theme

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch theme: %w", err)
	}
	return &theme, nil
}

// ListPagesWithComponents returns the live pages of a theme ordered by
// sort_order, each with its components ordered by sort_ordering.
func (r *ThemeRepository) ListPagesWithComponents(ctx context.Context, themeID uint) ([]gormModels.ThemePage, error) {
	var pages []gormModels.ThemePage

	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_ordering ASC, id ASC")
		}).
		Where("theme_id = ? AND deleted_at IS NULL", themeID).
		Order("sort_order ASC, id ASC").
		Find(&pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list theme pages: %w", err)
	}
	return pages, nil
}

func (r *ThemeRepository) GetPage(ctx context.Context, id uint) (*gormModels.ThemePage, error) {
	var page gormModels.ThemePage

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch theme page: %w", err)
	}
	return &page, nil
}

// GetComponent returns a component whose page is still live.
func (r *ThemeRepository) GetComponent(ctx context.Context, id uint) (*gormModels.ThemeComponent, error) {
	var component gormModels.ThemeComponent

	err := r.db.WithContext(ctx).
		Joins("JOIN appfiy_theme_page p ON p.id = appfiy_theme_component.theme_page_id AND p.deleted_at IS NULL").
		Where("appfiy_theme_component.id = ?", id).
		First(&component).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch theme component: %w", err)
	}
	return &component, nil
}

// ThemeIDForComponent resolves the theme owning a component.
func (r *ThemeRepository) ThemeIDForComponent(ctx context.Context, componentID uint) (uint, error) {
	var themeID uint

	err := r.db.WithContext(ctx).
		Table("appfiy_theme_component c").
		Select("p.theme_id").
		Joins("JOIN appfiy_theme_page p ON p.id = c.theme_page_id").
		Where("c.id = ?", componentID).
		Scan(&themeID).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve theme of component: %w", err)
	}
	return themeID, nil
}

// UpdatePageColumn writes a single column of a live page and reports
// whether a row matched.
func (r *ThemeRepository) UpdatePageColumn(ctx context.Context, id uint, column string, value any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.ThemePage{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumns(map[string]any{column: value, "updated_at": r.now()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update theme page %s: %w", column, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdateComponentColumn writes a single column of a component.
func (r *ThemeRepository) UpdateComponentColumn(ctx context.Context, id uint, column string, value any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.ThemeComponent{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{column: value, "updated_at": r.now()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update theme component %s: %w", column, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ThemeRepository) SoftDeletePage(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.ThemePage{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", r.now())
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete theme page: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ThemeRepository) CreateTheme(ctx context.Context, theme *gormModels.Theme) error {
	if err := r.db.WithContext(ctx).Create(theme).Error; err != nil {
		return fmt.Errorf("failed to create theme: %w", err)
	}
	return nil
}

func (r *ThemeRepository) CreatePage(ctx context.Context, page *gormModels.ThemePage) error {
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return fmt.Errorf("failed to create theme page: %w", err)
	}
	return nil
}

func (r *ThemeRepository) CreateComponent(ctx context.Context, component *gormModels.ThemeComponent) error {
	if err := r.db.WithContext(ctx).Create(component).Error; err != nil {
		return fmt.Errorf("failed to create theme component: %w", err)
	}
	return nil
}
