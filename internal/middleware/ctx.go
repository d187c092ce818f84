package middleware

type ContextKey string

const (
	ContextRequestID ContextKey = "request_id"
	ContextUserID    ContextKey = "user_id"
	ContextIsAdmin   ContextKey = "is_admin"
)
