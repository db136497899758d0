package dbutil

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres error code for unique_violation.
const uniqueViolation = "23505"

// gendry emits MySQL-style "LIMIT offset, count".
var mysqlLimit = regexp.MustCompile(`(?i)LIMIT\s+\?\s*,\s*\?`)

// Finalize adapts a gendry-built query for lib/pq: the MySQL LIMIT clause is
// rewritten to LIMIT/OFFSET form and every ? placeholder becomes a $N. Must
// run on every builder query before ExecContext/QueryContext.
func Finalize(query string, args []interface{}) (string, []interface{}) {
	query, args = rewriteLimit(query, args)
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}

func rewriteLimit(query string, args []interface{}) (string, []interface{}) {
	loc := mysqlLimit.FindStringIndex(query)
	if loc == nil {
		return query, args
	}
	// args are positional; the ? count before the clause locates the
	// offset/count pair that has to swap for LIMIT ? OFFSET ?
	first := strings.Count(query[:loc[0]], "?")
	if first+1 >= len(args) {
		return query, args
	}
	args[first], args[first+1] = args[first+1], args[first]
	return mysqlLimit.ReplaceAllString(query, "LIMIT ? OFFSET ?"), args
}

// IsConflict reports whether err is a Postgres unique-constraint violation.
func IsConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
