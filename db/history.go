package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// StatusHistoryEntry is one observed status sample for one station. Rows are
// append-only; nothing in the pipeline updates or deletes them.
type StatusHistoryEntry struct {
	Id       int64     `db:"id"`
	EvseId   string    `db:"evse_id"`
	Status   string    `db:"status"`
	PolledAt time.Time `db:"polled_at"`
}

func InsertStatusHistory(ctx context.Context, ext sqlx.ExtContext, entry *StatusHistoryEntry) error {
	_, err := sqlx.NamedExecContext(ctx, ext,
		"INSERT INTO charging_station_status_history (evse_id, status, polled_at) VALUES (:evse_id, :status, :polled_at)",
		entry)
	statsCollector.IncDbQuery("insert status history", err)
	return err
}

func GetStationHistory(ctx context.Context, db DbDetails, evseId string, limit int) ([]StatusHistoryEntry, error) {
	entries := []StatusHistoryEntry{}
	err := db.GeneralDb.SelectContext(ctx, &entries,
		"SELECT id, evse_id, status, polled_at FROM charging_station_status_history WHERE evse_id = ? ORDER BY polled_at DESC LIMIT ?",
		evseId, limit)
	statsCollector.IncDbQuery("select station history", err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}
