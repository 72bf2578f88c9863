package exporter

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"chargewatch/db"
)

// ExportTable writes the full contents of a table to a semicolon-delimited
// CSV file with a header row and no index column.
func ExportTable(ctx context.Context, dbDetails db.DbDetails, table, outputPath string) error {
	columns, rows, err := db.ReadTable(ctx, dbDetails, table)
	if err != nil {
		return fmt.Errorf("reading table %s: %w", table, err)
	}

	if err := writeCsv(columns, rows, outputPath); err != nil {
		return err
	}

	log.Infof("Exported %d rows of %s to %s", len(rows), table, filepath.ToSlash(outputPath))
	return nil
}

// writeCsv writes to a temp path first and renames into place, so a failed
// export never leaves a truncated file behind.
func writeCsv(columns []string, rows [][]sql.NullString, outputPath string) error {
	tmpPath := outputPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmpPath, err)
	}
	defer func() {
		file.Close()
		os.Remove(tmpPath)
	}()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, value := range row {
			// NULL renders as an empty field
			record[i] = value.String
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
