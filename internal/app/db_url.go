package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/club-roster/internal/config"
)

// postgresDSN returns the connection string to open and the database name
// used to label query spans.
func postgresDSN(cfg config.Config) (string, string) {
	dsn := strings.TrimSpace(cfg.DBURL)
	if cfg.DBDisablePreparedBinary {
		dsn = withQueryParam(dsn, "disable_prepared_binary_result", "yes")
	}
	return dsn, dbNameFromURL(dsn)
}

// withQueryParam sets key on a URL style DSN unless it is already present.
// Keyword/value DSNs are returned unchanged.
func withQueryParam(raw, key, value string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(key) != "" {
		return raw
	}
	query.Set(key, value)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
