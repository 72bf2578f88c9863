package db

import (
	"database/sql"
	"errors"

	"gopkg.in/guregu/null.v4"
)

type IngestStats struct {
	Stations     int64     `db:"stations"`
	Placeholders int64     `db:"placeholders"`
	HistoryRows  int64     `db:"history_rows"`
	LastPolledAt null.Time `db:"last_polled_at"`
}

type StatusStats struct {
	Status string  `db:"status"`
	Count  float64 `db:"count"`
}

func GetIngestStats(db DbDetails) (*IngestStats, error) {
	stats := IngestStats{}

	err := db.GeneralDb.Get(&stats,
		"SELECT "+
			"(SELECT COUNT(*) FROM charging_stations) AS stations, "+
			"(SELECT COUNT(*) FROM charging_stations WHERE station_name IS NULL) AS placeholders, "+
			"(SELECT COUNT(*) FROM charging_station_status_history) AS history_rows, "+
			"(SELECT MAX(polled_at) FROM charging_station_status_history) AS last_polled_at;",
	)
	statsCollector.IncDbQuery("select ingest stats", err)

	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func GetStatusStats(db DbDetails) ([]StatusStats, error) {
	stats := []StatusStats{}

	// breakdown of samples observed within the last hour
	err := db.GeneralDb.Select(&stats,
		"SELECT count(*) AS count, status "+
			"FROM charging_station_status_history WHERE polled_at > NOW() - INTERVAL 1 HOUR GROUP BY status;",
	)
	statsCollector.IncDbQuery("select status stats", err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}
