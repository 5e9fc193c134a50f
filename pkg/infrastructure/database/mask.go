package database

import (
	"net/url"
	"regexp"
	"strings"
)

var keywordSecret = regexp.MustCompile(`(?i)\b(password|pwd)\s*=\s*('(?:[^'\\]|\\.)*'|\{(?:[^}]|\}\})*\}|[^;\s]*)`)

// maskDSN hides credentials so a DSN can be logged.
func maskDSN(dsn string) string {
	if dsn == "" || dsn == ":memory:" {
		return dsn
	}

	u, err := url.Parse(dsn)
	if err == nil && looksLikeURL(u) {
		if ui := u.User; ui != nil {
			user := ui.Username()
			if _, hasPass := ui.Password(); hasPass {
				u.User = url.UserPassword(user, "*****")
			} else {
				u.User = url.User(user)
			}
		}

		q := u.Query()
		for k := range q {
			if isSensitiveKey(k) {
				q.Set(k, "*****")
			}
		}
		u.RawQuery = q.Encode()
		return u.String()
	}

	// keyword=value forms (libpq, ODBC)
	return keywordSecret.ReplaceAllString(dsn, "$1=*****")
}

func looksLikeURL(u *url.URL) bool {
	return u.Scheme != "" && (u.Host != "" || u.User != nil)
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	switch {
	case strings.Contains(key, "pass"),
		strings.Contains(key, "token"),
		strings.Contains(key, "secret"),
		strings.HasSuffix(key, "key"):
		return true
	default:
		return false
	}
}
