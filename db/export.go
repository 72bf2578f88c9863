package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidTableName reports whether name is safe to interpolate into a query.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// ReadTable reads every row of the named table. Values come back as
// sql.NullString so the caller can tell NULL apart from an empty string.
func ReadTable(ctx context.Context, db DbDetails, table string) ([]string, [][]sql.NullString, error) {
	if !ValidTableName(table) {
		return nil, nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.GeneralDb.QueryxContext(ctx, "SELECT * FROM `"+table+"`")
	statsCollector.IncDbQuery("select table export", err)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result [][]sql.NullString
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil, err
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}
