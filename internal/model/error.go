package model

// Error names used in the response envelope.
const (
	ErrNameValidation     = "ValidationError"
	ErrNameAuthentication = "AuthenticationError"
	ErrNameAuthorization  = "AuthorizationError"
	ErrNameNotFound       = "NotFoundError"
	ErrNameConflict       = "ConflictError"
	ErrNameRateLimit      = "RateLimitError"
	ErrNameInternal       = "InternalError"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Name    string            `json:"name"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewErrorResponse builds an envelope whose error and message carry the same text.
func NewErrorResponse(name, message string) ErrorResponse {
	return ErrorResponse{Error: message, Name: name, Message: message}
}
