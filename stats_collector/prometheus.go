package stats_collector

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pollCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poll_cycles",
			Help: "Total number of status poll cycles by outcome",
		},
		[]string{"status"},
	)

	feedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests",
			Help: "Total number of upstream feed requests",
		},
		[]string{"feed", "status"},
	)

	statusRows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "status_rows_written",
			Help: "Total number of status history rows written",
		},
	)

	placeholderStations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "placeholder_stations",
			Help: "Total number of placeholder station rows created",
		},
	)

	skippedStatusRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skipped_status_records",
			Help: "Total number of status records skipped during a cycle",
		},
		[]string{"reason"},
	)

	dbQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries",
			Help: "Total number of database queries by statement and outcome",
		},
		[]string{"query", "status"},
	)

	lastPoll = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_poll_timestamp",
			Help: "Unix time of the most recent completed poll cycle",
		},
	)
)

var _ StatsCollector = (*promCollector)(nil)

type promCollector struct {
}

func (col *promCollector) IncPollCycles(status string) {
	pollCycles.WithLabelValues(status).Inc()
}

func (col *promCollector) IncFeedRequests(feed, status string) {
	feedRequests.WithLabelValues(feed, status).Inc()
}

func (col *promCollector) AddStatusRows(count float64) {
	statusRows.Add(count)
}

func (col *promCollector) IncPlaceholderStations() {
	placeholderStations.Inc()
}

func (col *promCollector) IncSkippedStatusRecords(reason string) {
	skippedStatusRecords.WithLabelValues(reason).Inc()
}

func (col *promCollector) IncDbQuery(query string, err error) {
	if err != nil {
		dbQueries.WithLabelValues(query, "error").Inc()
	} else {
		dbQueries.WithLabelValues(query, "ok").Inc()
	}
}

func (col *promCollector) SetLastPoll(timestamp float64) {
	lastPoll.Set(timestamp)
}

func initPrometheus() {
	prometheus.MustRegister(
		pollCycles, feedRequests, statusRows, placeholderStations, skippedStatusRecords,

		dbQueries, lastPoll,
	)
}

var initOnce sync.Once

func NewPrometheusCollector() StatsCollector {
	initOnce.Do(initPrometheus)
	return &promCollector{}
}
