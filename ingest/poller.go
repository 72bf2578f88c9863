package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/jellydator/ttlcache/v3"
	log "github.com/sirupsen/logrus"

	"chargewatch/db"
	"chargewatch/oicp"
	"chargewatch/stats_collector"
)

var statsCollector stats_collector.StatsCollector = stats_collector.NewNoopStatsCollector()

func SetStatsCollector(collector stats_collector.StatsCollector) {
	statsCollector = collector
}

// StatusPoller runs one fetch-parse-validate-apply cycle per invocation.
// Every failure mode degrades to "skip this cycle and log"; nothing a cycle
// does can take the scheduler down.
type StatusPoller struct {
	client        *oicp.Client
	dbDetails     db.DbDetails
	knownStations *ttlcache.Cache[string, struct{}]
}

func NewStatusPoller(client *oicp.Client, dbDetails db.DbDetails) *StatusPoller {
	cache := ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](6 * time.Hour),
	)
	go cache.Start()

	return &StatusPoller{
		client:        client,
		dbDetails:     dbDetails,
		knownStations: cache,
	}
}

// RunCycle executes one poll cycle. All database writes of a cycle share one
// transaction: a storage error rolls the whole cycle back and the next
// scheduled cycle is the only retry.
func (p *StatusPoller) RunCycle(ctx context.Context) {
	doc, err := p.client.FetchStatus(ctx)
	if err != nil {
		if errors.Is(err, oicp.ErrParse) {
			statsCollector.IncPollCycles("parse_error")
		} else {
			statsCollector.IncPollCycles("fetch_error")
		}
		log.Warnf("Poll cycle: %s, skipping cycle", err)
		return
	}

	observations, err := doc.Observations()
	if err != nil {
		statsCollector.IncPollCycles("schema_error")
		log.Warnf("Poll cycle: %s, skipping cycle", err)
		return
	}

	polledAt := time.Now()
	written, stations, err := p.apply(ctx, observations, polledAt)
	if err != nil {
		statsCollector.IncPollCycles("db_error")
		log.Errorf("Poll cycle: database error, cycle rolled back: %s", err)
		return
	}

	// only remember stations once their rows are committed
	for _, evseId := range stations {
		p.knownStations.Set(evseId, struct{}{}, ttlcache.DefaultTTL)
	}

	statsCollector.IncPollCycles("ok")
	statsCollector.AddStatusRows(float64(written))
	statsCollector.SetLastPoll(float64(polledAt.Unix()))
	log.Infof("Poll cycle: wrote %d status rows", written)
}

func (p *StatusPoller) apply(ctx context.Context, observations []oicp.Observation, polledAt time.Time) (int, []string, error) {
	tx, err := p.dbDetails.GeneralDb.BeginTxx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer tx.Rollback()

	written := 0
	ensured := make(map[string]bool)
	for _, observation := range observations {
		if p.knownStations.Get(observation.EvseId) == nil && !ensured[observation.EvseId] {
			created, err := db.EnsureStation(ctx, tx, observation.EvseId)
			if err != nil {
				return 0, nil, err
			}
			if created {
				statsCollector.IncPlaceholderStations()
				log.Debugf("Poll cycle: created placeholder station %s", observation.EvseId)
			}
			ensured[observation.EvseId] = true
		}

		entry := db.StatusHistoryEntry{
			EvseId:   observation.EvseId,
			Status:   observation.Status,
			PolledAt: polledAt,
		}
		if err := db.InsertStatusHistory(ctx, tx, &entry); err != nil {
			return 0, nil, err
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}

	stations := make([]string, 0, len(ensured))
	for evseId := range ensured {
		stations = append(stations, evseId)
	}
	return written, stations, nil
}
