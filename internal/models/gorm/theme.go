package gorm

import (
	"appfiy/backoffice/internal/constants"
	"time"
)

type Theme struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement"`
	LayoutTypeID uint       `gorm:"column:layout_type_id;index;not null"`
	Name         string     `gorm:"column:name;type:varchar(191);not null"`
	Slug         string     `gorm:"column:slug;type:varchar(191);uniqueIndex;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index"`

	LayoutType LayoutType  `gorm:"foreignKey:LayoutTypeID"`
	Pages      []ThemePage `gorm:"foreignKey:ThemeID"`
}

func (Theme) TableName() string {
	return "appfiy_theme"
}

// ThemePage holds the per-page display configuration of a theme.
// StaticScreenMessage and StaticScreenImage only matter in static mode.
type ThemePage struct {
	ID                      uint                   `gorm:"column:id;primaryKey;autoIncrement"`
	ThemeID                 uint                   `gorm:"column:theme_id;index;not null"`
	Slug                    string                 `gorm:"column:slug;type:varchar(191);not null"`
	Name                    string                 `gorm:"column:name;type:varchar(191);not null"`
	SortOrder               int                    `gorm:"column:sort_order;not null;default:0"`
	PersistentFooterButtons int                    `gorm:"column:persistent_footer_buttons;not null;default:0"`
	ScreenStatus            constants.ScreenStatus `gorm:"column:screen_status;type:varchar(10);not null;default:dynamic"`
	StaticScreenMessage     *string                `gorm:"column:static_screen_message;type:text"`
	StaticScreenImage       *string                `gorm:"column:static_screen_image;type:varchar(255)"`
	CreatedAt               time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time              `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt               *time.Time             `gorm:"column:deleted_at;index"`

	Components []ThemeComponent `gorm:"foreignKey:ThemePageID"`
}

func (ThemePage) TableName() string {
	return "appfiy_theme_page"
}

type ThemeComponent struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ThemePageID    uint      `gorm:"column:theme_page_id;index;not null"`
	DisplayName    string    `gorm:"column:display_name;type:varchar(191);not null"`
	Selected       bool      `gorm:"column:selected;not null"`
	SortOrdering   int       `gorm:"column:sort_ordering;not null;default:0"`
	CloneComponent *string   `gorm:"column:clone_component;type:varchar(191)"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ThemeComponent) TableName() string {
	return "appfiy_theme_component"
}
