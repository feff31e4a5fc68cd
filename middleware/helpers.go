package middleware

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Claims checked in order for the display name of the local user.
const (
	jwtClaimName     = "name"
	jwtClaimNickname = "nickname"
	jwtClaimSubject  = "sub"
)

// GetUserNameFromContext returns the local user's display name from the token
// claims, or "" for anonymous requests.
func GetUserNameFromContext(ctx context.Context) string {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return ""
	}
	for _, key := range []string{jwtClaimName, jwtClaimNickname, jwtClaimSubject} {
		if v, ok := claims[key].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// LocalUser returns an identity accessor that falls back to defaultName when
// the request carries no usable claims.
func LocalUser(defaultName string) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		if name := GetUserNameFromContext(ctx); name != "" {
			return name
		}
		return defaultName
	}
}
