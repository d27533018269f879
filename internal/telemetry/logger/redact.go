package logger

import (
	"log/slog"
	"strings"
)

// Key patterns whose string values are never logged in the clear. The
// auth token is opaque, so detection is by attribute name rather than
// value shape; callers that need an identifier log a fingerprint
// (see pkg/token) under a *_fp key instead.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"credential",
	"authorization",
	"bearer",
}

// sensitiveExactKeys are matched whole, so "token_fp" stays loggable.
var sensitiveExactKeys = []string{
	"token",
	"auth_token",
	"access_token",
}

const redactedValue = "***REDACTED***"

// redactSensitive replaces credential-bearing attribute values.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		if IsSensitiveKey(a.Key) && a.Value.String() != "" {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// IsSensitiveKey reports whether a key name suggests credential content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, exact := range sensitiveExactKeys {
		if keyLower == exact {
			return true
		}
	}
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
