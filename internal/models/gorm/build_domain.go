package gorm

import "time"

// BuildDomain is the per-build configuration of a customer site, including
// where push notifications for that build are delivered.
type BuildDomain struct {
	ID                         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	SiteURL                    string    `gorm:"column:site_url;type:varchar(255);index;not null"`
	LicenseKey                 string    `gorm:"column:license_key;type:varchar(191);index;not null"`
	PackageName                string    `gorm:"column:package_name;type:varchar(191)"`
	FluentID                   *string   `gorm:"column:fluent_id;type:varchar(191)"`
	AndroidPushNotificationURL *string   `gorm:"column:android_push_notification_url;type:varchar(255)"`
	IOSPushNotificationURL     *string   `gorm:"column:ios_push_notification_url;type:varchar(255)"`
	IsActive                   bool      `gorm:"column:is_active;not null"`
	CreatedAt                  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BuildDomain) TableName() string {
	return "appfiy_build_domain"
}
