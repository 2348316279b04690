package database

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when a result set has no rows to show.
var ErrEmptyResult = errors.New("empty result")

// QueryError reports a failed query engine operation.
type QueryError struct {
	Op    string // "list tables" or "dump table"
	Table string // empty for Op "list tables"
	Err   error
}

func (e *QueryError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError reports whether err is, or wraps, a *QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
