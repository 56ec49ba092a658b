package utils

import (
	"fmt"
	"strings"
)

// MaskDSN hides the password of a database DSN for logging.
// URL forms (oracle://, postgres://) mask the userinfo password, key=value
// forms mask password=..., and anything else is returned as is (e.g. SQLite paths).
func MaskDSN(dsn string) string {
	if dsn == "" {
		return "--- EMPTY ---"
	}
	if schemeEnd := strings.Index(dsn, "://"); schemeEnd >= 0 {
		prefix := dsn[:schemeEnd+3]
		rest := dsn[schemeEnd+3:]
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return dsn
		}
		authPart, hostPart := rest[:at], rest[at+1:]
		user, _, hasPassword := strings.Cut(authPart, ":")
		if !hasPassword {
			return dsn
		}
		return fmt.Sprintf("%s%s:***MASKED***@%s", prefix, user, hostPart)
	}

	fields := strings.Fields(dsn)
	masked := false
	for i, f := range fields {
		if key, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(key, "password") {
			fields[i] = key + "=***MASKED***"
			masked = true
		}
	}
	if masked {
		return strings.Join(fields, " ")
	}
	// Oracle easy connect: user/password@host
	if user, rest, ok := strings.Cut(dsn, "/"); ok && strings.Contains(rest, "@") && !strings.Contains(user, "@") {
		_, host, _ := strings.Cut(rest, "@")
		return fmt.Sprintf("%s/***MASKED***@%s", user, host)
	}
	return dsn
}
