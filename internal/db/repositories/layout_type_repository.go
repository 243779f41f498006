package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormModels "appfiy/backoffice/internal/models/gorm"

	"gorm.io/gorm"
)

// LayoutTypeRepository handles appfiy_layout_type. Soft-deleted rows are
// excluded by an explicit deleted_at filter on every read.
type LayoutTypeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLayoutTypeRepository(db *gorm.DB) *LayoutTypeRepository {
	return &LayoutTypeRepository{db: db, now: time.Now}
}

func (r *LayoutTypeRepository) List(ctx context.Context, withTrashed bool) ([]gormModels.LayoutType, error) {
	var rows []gormModels.LayoutType

	q := r.db.WithContext(ctx).Order("name ASC, id ASC")
	if !withTrashed {
		q = q.Where("deleted_at IS NULL")
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list layout types: %w", err)
	}
	return rows, nil
}

// GetByID returns nil when the row does not exist or is soft deleted and
// withTrashed is false.
func (r *LayoutTypeRepository) GetByID(ctx context.Context, id uint, withTrashed bool) (*gormModels.LayoutType, error) {
	var row gormModels.LayoutType

	q := r.db.WithContext(ctx).Where("id = ?", id)
	if !withTrashed {
		q = q.Where("deleted_at IS NULL")
	}
	err := q.First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch layout type: %w", err)
	}
	return &row, nil
}

// SlugExists checks trashed rows too, since the unique index covers them.
func (r *LayoutTypeRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64

	q := r.db.WithContext(ctx).Model(&gormModels.LayoutType{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check layout slug: %w", err)
	}
	return count > 0, nil
}

func (r *LayoutTypeRepository) Create(ctx context.Context, row *gormModels.LayoutType) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create layout type: %w", err)
	}
	return nil
}

// Update writes name and slug of a live row. It reports false when no live
// row matched.
func (r *LayoutTypeRepository) Update(ctx context.Context, row *gormModels.LayoutType) (bool, error) {
	row.UpdatedAt = r.now()
	res := r.db.WithContext(ctx).
		Model(&gormModels.LayoutType{}).
		Where("id = ? AND deleted_at IS NULL", row.ID).
		UpdateColumns(map[string]any{
			"name":       row.Name,
			"slug":       row.Slug,
			"updated_at": row.UpdatedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to update layout type: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *LayoutTypeRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.LayoutType{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", r.now())
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete layout type: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *LayoutTypeRepository) Restore(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.LayoutType{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		UpdateColumns(map[string]any{"deleted_at": nil, "updated_at": r.now()})
	if res.Error != nil {
		return false, fmt.Errorf("failed to restore layout type: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
