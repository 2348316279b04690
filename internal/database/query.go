package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// QueryResult holds the raw results of a query execution.
type QueryResult struct {
	Columns  []string
	Rows     [][]any
	Duration time.Duration
}

// ResultSet is a query result rendered as text, ready for layout.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the result set has no rows.
func (rs ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// ResultSet converts the raw values to display text.
func (r *QueryResult) ResultSet() ResultSet {
	rs := ResultSet{
		Columns: append([]string(nil), r.Columns...),
		Rows:    make([][]string, len(r.Rows)),
	}
	for i, row := range r.Rows {
		text := make([]string, len(row))
		for j, v := range row {
			text[j] = FormatValue(v)
		}
		rs.Rows[i] = text
	}
	return rs
}

// Query executes a read query and returns structured results.
func Query(conn *Connection, query string, args ...any) (*QueryResult, error) {
	if !isReadOnlyQuery(query) {
		return nil, fmt.Errorf("only read queries are supported")
	}

	start := time.Now()
	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &QueryResult{
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	for rows.Next() {
		// Create scan destinations
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		// Convert []byte to string for readability
		row := make([]any, len(columns))
		for i, v := range values {
			switch val := v.(type) {
			case []byte:
				row[i] = string(val)
			default:
				row[i] = val
			}
		}
		result.Rows = append(result.Rows, row)
	}

	result.Duration = time.Since(start)

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// selectRows reads up to limit rows of a table in storage order. A limit of
// zero reads them all.
func selectRows(conn *Connection, table string, limit int) (*QueryResult, error) {
	query := "SELECT * FROM " + quoteIdentifier(table)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return Query(conn, query)
}

// isReadOnlyQuery checks if a query is read-only.
func isReadOnlyQuery(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(upper, "SELECT") ||
		strings.HasPrefix(upper, "PRAGMA") ||
		strings.HasPrefix(upper, "EXPLAIN") ||
		strings.HasPrefix(upper, "WITH")
}

// FormatValue formats a value for display.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format(time.RFC3339)
	case sql.NullString:
		if val.Valid {
			return val.String
		}
		return "NULL"
	case sql.NullInt64:
		if val.Valid {
			return fmt.Sprintf("%d", val.Int64)
		}
		return "NULL"
	case sql.NullFloat64:
		if val.Valid {
			return fmt.Sprintf("%g", val.Float64)
		}
		return "NULL"
	default:
		return fmt.Sprintf("%v", val)
	}
}
