package constants

const (
	MsgInvalidID           = "Invalid id"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgValidationFailed    = "Validation failed"
	MsgNotFound            = "Record not found"
	MsgConflict            = "Record already exists"
	MsgInternalError       = "Something went wrong"
	MsgUnauthorized        = "Unauthorized"
	MsgForbidden           = "Forbidden"
	MsgCrossSiteRequest    = "Cross-site request rejected"
	MsgTooManyRequests     = "Too many requests"
	MsgUnknownInlineField  = "field is not editable"
	MsgStaticImageRequired = "static_screen_image is required when screen_status is static"
	MsgPageNotStatic       = "theme page is not in static mode"
	MsgContentRequired     = "required when the other platform content is absent"
)
