package oicp

import (
	gojson "github.com/goccy/go-json"

	"chargewatch/stats_collector"
)

var statsCollector stats_collector.StatsCollector = stats_collector.NewNoopStatsCollector()

func SetStatsCollector(collector stats_collector.StatsCollector) {
	statsCollector = collector
}

// DataDocument is the static metadata feed:
// { EVSEData: [ { EVSEDataRecord: [ ... ] } ] }
type DataDocument struct {
	EVSEData []DataPage `json:"EVSEData"`
}

type DataPage struct {
	OperatorID     string           `json:"OperatorID"`
	OperatorName   string           `json:"OperatorName"`
	EVSEDataRecord []EVSEDataRecord `json:"EVSEDataRecord"`
}

type LocalizedText struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type Address struct {
	Country    string `json:"Country"`
	City       string `json:"City"`
	Street     string `json:"Street"`
	PostalCode string `json:"PostalCode"`
	HouseNum   string `json:"HouseNum"`
	Floor      string `json:"Floor"`
	Region     string `json:"Region"`
	TimeZone   string `json:"TimeZone"`
}

type GeoCoordinates struct {
	// "lat lon" in one space-separated string, the provider's only variant.
	Google string `json:"Google"`
}

// EVSEDataRecord is one station document from the metadata feed. Only EvseID is
// required; everything else may be absent or null. Deeply nested members the
// pipeline stores opaquely stay raw here and are serialized into text columns
// as-is.
type EVSEDataRecord struct {
	EvseID               string          `json:"EvseID"`
	ChargingStationNames []LocalizedText `json:"ChargingStationNames"`
	Address              *Address        `json:"Address"`
	GeoCoordinates       *GeoCoordinates `json:"GeoCoordinates"`

	Accessibility                    *string           `json:"Accessibility"`
	AccessibilityLocation            *string           `json:"AccessibilityLocation"`
	AdditionalInfo                   gojson.RawMessage `json:"AdditionalInfo"`
	AuthenticationModes              gojson.RawMessage `json:"AuthenticationModes"`
	CalibrationLawDataAvailability   *string           `json:"CalibrationLawDataAvailability"`
	ChargingFacilities               gojson.RawMessage `json:"ChargingFacilities"`
	ChargingPoolID                   *string           `json:"ChargingPoolID"`
	ChargingStationID                *string           `json:"ChargingStationId"`
	ChargingStationLocationReference gojson.RawMessage `json:"ChargingStationLocationReference"`
	ClearinghouseID                  *string           `json:"ClearinghouseID"`
	DynamicInfoAvailable             *string           `json:"DynamicInfoAvailable"`
	DynamicPowerLevel                *bool             `json:"DynamicPowerLevel"`
	EnergySource                     gojson.RawMessage `json:"EnergySource"`
	EnvironmentalImpact              gojson.RawMessage `json:"EnvironmentalImpact"`
	GeoChargingPointEntrance         gojson.RawMessage `json:"GeoChargingPointEntrance"`
	HardwareManufacturer             *string           `json:"HardwareManufacturer"`
	HotlinePhoneNumber               *string           `json:"HotlinePhoneNumber"`
	HubOperatorID                    *string           `json:"HubOperatorID"`
	IsHubjectCompatible              *bool             `json:"IsHubjectCompatible"`
	IsOpen24Hours                    *bool             `json:"IsOpen24Hours"`
	LocationImage                    gojson.RawMessage `json:"LocationImage"`
	MaxCapacity                      *int64            `json:"MaxCapacity"`
	OpeningTimes                     gojson.RawMessage `json:"OpeningTimes"`
	OperatorID                       *string           `json:"OperatorID"`
	OperatorName                     *string           `json:"OperatorName"`
	PaymentOptions                   gojson.RawMessage `json:"PaymentOptions"`
	Plugs                            gojson.RawMessage `json:"Plugs"`
	RenewableEnergy                  *bool             `json:"RenewableEnergy"`
	SubOperatorName                  *string           `json:"SubOperatorName"`
	ValueAddedServices               gojson.RawMessage `json:"ValueAddedServices"`

	LastUpdate *string `json:"lastUpdate"`
}

// Records flattens the nested EVSEData pages into one record list. Returns
// ErrSchema when the top-level collection is absent - a malformed snapshot is
// fatal to a bulk load.
func (d *DataDocument) Records() ([]EVSEDataRecord, error) {
	if len(d.EVSEData) == 0 {
		return nil, ErrSchema
	}
	var records []EVSEDataRecord
	for _, page := range d.EVSEData {
		records = append(records, page.EVSEDataRecord...)
	}
	return records, nil
}
