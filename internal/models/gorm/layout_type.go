package gorm

import "time"

// LayoutType groups themes by layout family. Soft deleted via DeletedAt.
type LayoutType struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;type:varchar(191);not null" json:"name"`
	Slug      string     `gorm:"column:slug;type:varchar(191);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (LayoutType) TableName() string {
	return "appfiy_layout_type"
}
