package oicp

import (
	log "github.com/sirupsen/logrus"
)

// StatusDocument is the dynamic status feed:
// { EVSEStatuses: [ { EVSEStatusRecord: [ ... ] }, ... ] }
//
// Collections are pointers to slices so an absent key can be told apart from an
// empty one; the two cases degrade differently.
type StatusDocument struct {
	EVSEStatuses *[]StatusPage `json:"EVSEStatuses"`
}

type StatusPage struct {
	OperatorID       string          `json:"OperatorID"`
	OperatorName     string          `json:"OperatorName"`
	EVSEStatusRecord *[]StatusRecord `json:"EVSEStatusRecord"`
}

type StatusRecord struct {
	EvseID     string `json:"EvseID"`
	EVSEStatus string `json:"EVSEStatus"`
}

// Observation is one usable (station, status) pair pulled out of a status
// snapshot.
type Observation struct {
	EvseId string
	Status string
}

// Observations validates the snapshot shape and extracts every status record
// carrying both an identifier and a status label.
//
// Validation is two-tier: a missing top-level EVSEStatuses aborts the whole
// snapshot (ErrSchema), while a page missing its EVSEStatusRecord collection
// only drops that page. Records missing either field are skipped one by one.
func (d *StatusDocument) Observations() ([]Observation, error) {
	if d.EVSEStatuses == nil {
		return nil, ErrSchema
	}

	var observations []Observation
	for _, page := range *d.EVSEStatuses {
		if page.EVSEStatusRecord == nil {
			log.Warnf("Status feed: element missing EVSEStatusRecord, skipping element (operator %s)", page.OperatorID)
			statsCollector.IncSkippedStatusRecords("missing_record_collection")
			continue
		}
		for _, record := range *page.EVSEStatusRecord {
			if record.EvseID == "" || record.EVSEStatus == "" {
				log.Warnf("Status feed: record missing EvseID or EVSEStatus, skipping")
				statsCollector.IncSkippedStatusRecords("missing_field")
				continue
			}
			observations = append(observations, Observation{EvseId: record.EvseID, Status: record.EVSEStatus})
		}
	}
	return observations, nil
}
