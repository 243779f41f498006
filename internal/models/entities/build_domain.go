package entities

// BuildDomainTarget is the push configuration of one build domain.
type BuildDomainTarget struct {
	ID                         int64   `db:"id"`
	SiteURL                    string  `db:"site_url"`
	LicenseKey                 string  `db:"license_key"`
	PackageName                *string `db:"package_name"`
	AndroidPushNotificationURL *string `db:"android_push_notification_url"`
	IOSPushNotificationURL     *string `db:"ios_push_notification_url"`
	IsActive                   bool    `db:"is_active"`
}
