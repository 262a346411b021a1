package handler

// Client-facing response messages.
const (
	MsgSuccess            = "Success"
	MsgCreated            = "Created"
	MsgInternalError      = "Internal server error"
	MsgBadRequest         = "Bad request"
	MsgUnauthorized       = "Unauthorized"
	MsgForbidden          = "Forbidden"
	MsgValidationError    = "Validation error"
	MsgDataNotFound       = "Data not found"
	MsgUserNotFound       = "User not found"
	MsgUserAlreadyExists  = "User already exist"
	MsgProductNotFound    = "Product not found"
	MsgInvalidCredentials = "Invalid credentials. Please check your email and password, then try again."
	MsgTokenExpired       = "Unauthorized: Token has expired."
	MsgTokenInvalid       = "Unauthorized: Invalid token."
	MsgStockRejected      = "Stock change rejected"
	MsgTriggerCheckFailed = "Trigger check failed"
)
