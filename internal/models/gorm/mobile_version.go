package gorm

import "time"

type MobileSupportApp struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(191);not null" json:"name"`
	PackageName string    `gorm:"column:package_name;type:varchar(191);uniqueIndex;not null" json:"package_name"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MobileSupportApp) TableName() string {
	return "appza_mobile_support_app"
}

// MobileVersionMapping maps a mobile app release to the plugin versions it
// supports. MobileVersionCode is derived from MobileVersion on every save and
// the timestamps are stamped by the repository, not by GORM.
type MobileVersionMapping struct {
	ID                   uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MobileAppID          uint       `gorm:"column:mobile_app_id;index;not null" json:"mobile_app_id"`
	MobileVersion        string     `gorm:"column:mobile_version;type:varchar(32);not null" json:"mobile_version"`
	MobileVersionCode    int        `gorm:"column:mobile_version_code;index;not null" json:"mobile_version_code"`
	MinimumPluginVersion string     `gorm:"column:minimum_plugin_version;type:varchar(32);not null" json:"minimum_plugin_version"`
	LatestPluginVersion  string     `gorm:"column:latest_plugin_version;type:varchar(32);not null" json:"latest_plugin_version"`
	ForceUpdate          bool       `gorm:"column:force_update;not null" json:"force_update"`
	IsActive             bool       `gorm:"column:is_active;not null" json:"is_active"`
	OptionalMessage      *string    `gorm:"column:optional_message;type:text" json:"optional_message"`
	CreatedAt            *time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	UpdatedAt            *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`

	MobileApp MobileSupportApp `gorm:"foreignKey:MobileAppID" json:"-"`
}

func (MobileVersionMapping) TableName() string {
	return "appza_mobile_version_mapping"
}
