package ingest

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"chargewatch/db"
	"chargewatch/oicp"
)

// BulkLoader performs the one-shot bootstrap of station metadata. The caller
// is responsible for only invoking it against an empty station table.
type BulkLoader struct {
	client    *oicp.Client
	dbDetails db.DbDetails
}

func NewBulkLoader(client *oicp.Client, dbDetails db.DbDetails) *BulkLoader {
	return &BulkLoader{client: client, dbDetails: dbDetails}
}

// Load fetches the full metadata snapshot and upserts every record inside one
// transaction. Fetch, parse and shape failures are fatal to the run; nothing
// is committed on error, so rerunning after a failure is always safe.
func (l *BulkLoader) Load(ctx context.Context) error {
	doc, err := l.client.FetchData(ctx)
	if err != nil {
		return err
	}
	records, err := doc.Records()
	if err != nil {
		return fmt.Errorf("%w: metadata document missing EVSEData", err)
	}

	tx, err := l.dbDetails.GeneralDb.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	loaded, skipped := 0, 0
	for i := range records {
		station, err := oicp.MapDataRecord(&records[i])
		if err != nil {
			log.Warnf("Bulk load: skipping record %d: %s", i, err)
			skipped++
			continue
		}
		if err := db.UpsertStation(ctx, tx, station); err != nil {
			return err
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Infof("Bulk load: %d stations loaded, %d records skipped", loaded, skipped)
	return nil
}
