package constants

// Queries for the sqlx read paths. Written with ? placeholders and passed
// through sqlx.DB.Rebind so they run on Postgres and SQLite alike.
const (
	ListActiveVersionRules = `
	SELECT id, mobile_app_id, mobile_version, mobile_version_code,
	       minimum_plugin_version, latest_plugin_version, force_update, optional_message
	FROM appza_mobile_version_mapping
	WHERE mobile_app_id = ? AND is_active = ?
	ORDER BY mobile_version_code DESC, id DESC
	`

	GetActiveBuildDomainBySiteAndLicense = `
	SELECT id, site_url, license_key, package_name,
	       android_push_notification_url, ios_push_notification_url
	FROM appfiy_build_domain
	WHERE site_url = ? AND license_key = ? AND is_active = ?
	ORDER BY id DESC
	LIMIT 1
	`

	ListBuildDomains = `
	SELECT id, site_url, license_key, package_name,
	       android_push_notification_url, ios_push_notification_url, is_active
	FROM appfiy_build_domain
	ORDER BY id
	`

	UpdateBuildDomainPushURLs = `
	UPDATE appfiy_build_domain
	SET android_push_notification_url = ?, ios_push_notification_url = ?, updated_at = ?
	WHERE id = ?
	`

	// Postgres only; used by cmd/build_domain_gen over lib/pq.
	InsertBuildDomain = `
	INSERT INTO appfiy_build_domain
		(site_url, license_key, package_name, android_push_notification_url, ios_push_notification_url, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, true, now(), now())
	RETURNING id
	`
)
