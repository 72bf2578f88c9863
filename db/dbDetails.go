package db

import (
	"github.com/jmoiron/sqlx"

	"chargewatch/stats_collector"
)

type DbDetails struct {
	GeneralDb *sqlx.DB
}

var statsCollector stats_collector.StatsCollector = stats_collector.NewNoopStatsCollector()

// SetStatsCollector replaces the collector used for db query counters.
func SetStatsCollector(collector stats_collector.StatsCollector) {
	statsCollector = collector
}
