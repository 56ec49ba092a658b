package middleware

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	RequestFileLoggerKey ContextKey = "requestFileLogger"
	RequestIDKey         ContextKey = "requestID"
	SubjectKey           ContextKey = "subject" // Token subject stored by Protected

	RequestIDHeader     = "X-Request-ID"
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
