package middleware

import (
	"context"
	"net/url"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	bodyKey
	formKey
	cookiesKey
	signedCookiesKey
)

// RequestIDFrom returns the request id assigned by RequestID, or "" if none.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// BodyFrom returns the decoded JSON body stored by Body.
func BodyFrom(ctx context.Context) (any, bool) {
	v := ctx.Value(bodyKey)
	return v, v != nil
}

// FormFrom returns the decoded URL-encoded body stored by Body.
func FormFrom(ctx context.Context) (url.Values, bool) {
	v, ok := ctx.Value(formKey).(url.Values)
	return v, ok
}

// CookiesFrom returns the cookies parsed by Cookies. The map is never nil when
// the Cookies middleware ran.
func CookiesFrom(ctx context.Context) map[string]string {
	c, _ := ctx.Value(cookiesKey).(map[string]string)
	return c
}

// SignedCookiesFrom returns the cookies whose signature was verified by Cookies.
func SignedCookiesFrom(ctx context.Context) map[string]string {
	c, _ := ctx.Value(signedCookiesKey).(map[string]string)
	return c
}
