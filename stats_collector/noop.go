package stats_collector

var _ StatsCollector = (*noopCollector)(nil)

type noopCollector struct {
}

func (col *noopCollector) IncPollCycles(string)           {}
func (col *noopCollector) IncFeedRequests(string, string) {}
func (col *noopCollector) AddStatusRows(float64)          {}
func (col *noopCollector) IncPlaceholderStations()        {}
func (col *noopCollector) IncSkippedStatusRecords(string) {}
func (col *noopCollector) IncDbQuery(string, error)       {}
func (col *noopCollector) SetLastPoll(float64)            {}

func NewNoopStatsCollector() StatsCollector {
	return &noopCollector{}
}
