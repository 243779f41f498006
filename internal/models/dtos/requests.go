package dtos

// InlineUpdateReq is the query string of the assign-component AJAX calls.
type InlineUpdateReq struct {
	ID        string
	FieldName string
	Value     string
	IsChecked *string
}

type LayoutTypeReq struct {
	Name string `json:"name" validate:"required,max=191"`
	Slug string `json:"slug" validate:"omitempty,max=191"`
}

type MobileSupportAppReq struct {
	Name        string `json:"name" validate:"required,max=191"`
	PackageName string `json:"package_name" validate:"required,max=191"`
	IsActive    *bool  `json:"is_active"`
}

// VersionMappingReq never carries mobile_version_code; it is always derived.
type VersionMappingReq struct {
	MobileVersion        string  `json:"mobile_version" validate:"required,max=32"`
	MinimumPluginVersion string  `json:"minimum_plugin_version" validate:"required,max=32"`
	LatestPluginVersion  string  `json:"latest_plugin_version" validate:"required,max=32"`
	ForceUpdate          bool    `json:"force_update"`
	IsActive             *bool   `json:"is_active"`
	OptionalMessage      *string `json:"optional_message"`
}

type VersionCheckReq struct {
	MobileAppID       uint   `json:"mobile_app_id" validate:"required"`
	MobileVersion     string `json:"mobile_version" validate:"required_without=MobileVersionCode"`
	MobileVersionCode *int   `json:"mobile_version_code" validate:"omitempty,min=0"`
}

type BuildNotificationReq struct {
	SiteURL                    string `json:"site_url" form:"site_url" validate:"required,url"`
	LicenseKey                 string `json:"license_key" form:"license_key" validate:"required"`
	AndroidNotificationContent string `json:"android_notification_content" form:"android_notification_content" validate:"required_without=IOSNotificationContent"`
	IOSNotificationContent     string `json:"ios_notification_content" form:"ios_notification_content" validate:"required_without=AndroidNotificationContent"`
}

type PushURLsReq struct {
	AndroidPushNotificationURL *string `json:"android_push_notification_url" validate:"omitempty,url"`
	IOSPushNotificationURL     *string `json:"ios_push_notification_url" validate:"omitempty,url"`
}
