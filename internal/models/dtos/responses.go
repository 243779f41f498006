package dtos

import "appfiy/backoffice/internal/constants"

// APIResponse is the envelope of every JSON endpoint.
type APIResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	ResponseTime string            `json:"response_time"`
	Data         any               `json:"data,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}

type ThemeView struct {
	ThemeID uint            `json:"theme_id"`
	Name    string          `json:"name"`
	Slug    string          `json:"slug"`
	Pages   []ThemePageView `json:"pages"`
}

type ThemePageView struct {
	ThemePageID             uint                   `json:"theme_page_id"`
	Slug                    string                 `json:"slug"`
	Name                    string                 `json:"name"`
	SortOrder               int                    `json:"sort_order"`
	PersistentFooterButtons int                    `json:"persistent_footer_buttons"`
	ScreenStatus            constants.ScreenStatus `json:"screen_status"`
	StaticScreenMessage     *string                `json:"static_screen_message"`
	StaticScreenImage       *string                `json:"static_screen_image"`
	StaticScreenImageURL    string                 `json:"static_screen_image_url,omitempty"`
	Complete                bool                   `json:"complete"`
	Issues                  []string               `json:"issues,omitempty"`
	Components              []ThemeComponentView   `json:"components"`
}

type ThemeComponentView struct {
	ID             uint    `json:"id"`
	DisplayName    string  `json:"display_name"`
	Selected       bool    `json:"selected"`
	SortOrdering   int     `json:"sort_ordering"`
	CloneComponent *string `json:"clone_component"`
}

// InlineUpdateResult echoes the value read back after the write.
type InlineUpdateResult struct {
	ID        uint                 `json:"id"`
	Entity    constants.EntityKind `json:"entity"`
	FieldName string               `json:"field_name"`
	Value     any                  `json:"value"`
	Complete  *bool                `json:"complete,omitempty"`
	Issues    []string             `json:"issues,omitempty"`
}

type StaticImageUploadResult struct {
	ThemePageID uint   `json:"theme_page_id"`
	StoredPath  string `json:"stored_path"`
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type CompatibilityResult struct {
	MobileAppID          uint    `json:"mobile_app_id"`
	MobileVersionCode    int     `json:"mobile_version_code"`
	Matched              bool    `json:"matched"`
	MatchedVersion       string  `json:"matched_version,omitempty"`
	ForceUpdate          bool    `json:"force_update"`
	MinimumPluginVersion string  `json:"minimum_plugin_version,omitempty"`
	LatestPluginVersion  string  `json:"latest_plugin_version,omitempty"`
	OptionalMessage      *string `json:"optional_message,omitempty"`
}

type PushDispatchOutcome struct {
	Platform   constants.Platform `json:"platform"`
	Status     string             `json:"status"`
	HTTPStatus int                `json:"http_status,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type BuildNotificationResult struct {
	BuildDomainID int64                 `json:"build_domain_id"`
	SiteURL       string                `json:"site_url"`
	Dispatches    []PushDispatchOutcome `json:"dispatches"`
}

type BuildDomainView struct {
	ID                         int64   `json:"id"`
	SiteURL                    string  `json:"site_url"`
	LicenseKeyHint             string  `json:"license_key_hint"`
	PackageName                *string `json:"package_name"`
	AndroidPushNotificationURL *string `json:"android_push_notification_url"`
	IOSPushNotificationURL     *string `json:"ios_push_notification_url"`
	IsActive                   bool    `json:"is_active"`
}
