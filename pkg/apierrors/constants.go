package apierrors

const (
	MsgInvalidPayload     = "invalidPayload"
	MsgValidationFailed   = "validationFailed"
	MsgInvalidID          = "invalidID"
	MsgIDMismatch         = "idMismatch"
	MsgTaskNotFound       = "taskNotFound"
	MsgUserNotFound       = "userNotFound"
	MsgInternalError      = "internalError"
	MsgServiceUnavailable = "serviceUnavailable"

	// Field-level messages take the field name as template data.
	MsgFieldRequired    = "fieldRequired"
	MsgFieldInvalidURL  = "fieldInvalidURL"
	MsgFieldInvalidID   = "fieldInvalidID"
	MsgFieldInvalid     = "fieldInvalid"
	MsgAssigneeNotFound = "assigneeNotFound"
)
