package exporter

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCsvHeaderAndRows(t *testing.T) {
	columns := []string{"id", "evse_id", "status"}
	rows := [][]sql.NullString{
		{{String: "1", Valid: true}, {String: "CH*ABC*E1", Valid: true}, {String: "Available", Valid: true}},
		{{String: "2", Valid: true}, {String: "CH*ABC*E2", Valid: true}, {String: "Occupied", Valid: true}},
		{{String: "3", Valid: true}, {String: "CH*ABC*E3", Valid: true}, {Valid: false}},
	}

	outputPath := filepath.Join(t.TempDir(), "out.csv")
	if err := writeCsv(columns, rows, outputPath); err != nil {
		t.Fatalf("writeCsv failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header + 3 rows), got %d", len(lines))
	}
	if lines[0] != "id;evse_id;status" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1;CH*ABC*E1;Available" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	// NULL must come out as an empty field, not the word NULL
	if lines[3] != "3;CH*ABC*E3;" {
		t.Errorf("unexpected null rendering: %q", lines[3])
	}

	if _, err := os.Stat(outputPath + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestWriteCsvEmptyTable(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.csv")
	if err := writeCsv([]string{"a", "b"}, nil, outputPath); err != nil {
		t.Fatalf("writeCsv failed: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if strings.TrimRight(string(content), "\n") != "a;b" {
		t.Errorf("expected header only, got %q", string(content))
	}
}
