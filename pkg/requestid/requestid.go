// Package requestid переносит идентификатор входящего запроса через context
// до логов и исходящих запросов к PMS.
package requestid

import "context"

// Header заголовок с идентификатором запроса
const Header = "X-Request-ID"

type contextKey struct{}

// NewContext возвращает контекст с идентификатором запроса
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext возвращает идентификатор запроса или пустую строку
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
