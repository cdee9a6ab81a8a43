package errors

// Error messages shared by all endpoints.
const (
	MsgInvalidRequest   = "invalid request"
	MsgNotFound         = "not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgInternalError    = "internal server error"
)
