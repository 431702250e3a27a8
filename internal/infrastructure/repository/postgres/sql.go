package postgres

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/lib/pq"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isIntegrityViolation reports whether err is a Postgres class 23 error
// (unique, foreign key or check constraint).
func isIntegrityViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code.Class() == "23"
}

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

func nullablePosition(name string) sql.NullString {
	if name == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: name, Valid: true}
}
