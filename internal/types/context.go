package types

import "context"

// Context Keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	bodyKey      contextKey = "json_body"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithBody stores a decoded JSON request body in the context.
func WithBody(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, bodyKey, body)
}

// GetBody retrieves the decoded JSON request body from the context.
// Requests that carried no JSON body yield an empty object, never nil.
func GetBody(ctx context.Context) any {
	if body := ctx.Value(bodyKey); body != nil {
		return body
	}
	return map[string]any{}
}
