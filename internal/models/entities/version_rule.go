package entities

// VersionRule is an active row of appza_mobile_version_mapping as read by the
// compatibility evaluator.
type VersionRule struct {
	ID                   int64   `db:"id"`
	MobileAppID          int64   `db:"mobile_app_id"`
	MobileVersion        string  `db:"mobile_version"`
	MobileVersionCode    int     `db:"mobile_version_code"`
	MinimumPluginVersion string  `db:"minimum_plugin_version"`
	LatestPluginVersion  string  `db:"latest_plugin_version"`
	ForceUpdate          bool    `db:"force_update"`
	OptionalMessage      *string `db:"optional_message"`
}
