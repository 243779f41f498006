package constants

type (
	APIStatus   string
	CachePrefix string
	EntityKind  string
	Platform    string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixThemeView     CachePrefix = "THEME_VIEW_"
	CachePrefixCompatibility CachePrefix = "COMPAT_"

	EntityThemePage      EntityKind = "theme_page"
	EntityThemeComponent EntityKind = "theme_component"

	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Inline-editable field names as sent by the assign-component page.
const (
	FieldDisplayName             = "display_name"
	FieldCloneComponent          = "clone_component"
	FieldSelected                = "selected_id"
	FieldSortOrdering            = "sort_ordering"
	FieldPersistentFooterButtons = "persistent_footer_buttons"
	FieldSortOrder               = "sort_order"
	FieldScreenStatus            = "screen_status"
	FieldStaticScreenMessage     = "static_screen_message"
	FieldStaticScreenImage       = "static_screen_image"
)

const (
	StaticImageDir        = "theme-page"
	DisplayNameMaxLength  = 191
	ScreenStatusMaxLength = 10
)
