package oicp

import (
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		valid  bool
		lat    float64
		lon    float64
	}{
		{"zurich", "47.3769 8.5417", true, 47.3769, 8.5417},
		{"sentinel", "None None", false, 0, 0},
		{"empty", "", false, 0, 0},
		{"garbage", "abc def", false, 0, 0},
		{"one token", "47.3769", false, 0, 0},
		{"three tokens", "47.3769 8.5417 12", false, 0, 0},
		{"negative", "-33.8688 151.2093", true, -33.8688, 151.2093},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := ParseCoordinates(tt.input)
			if lat.Valid != tt.valid || lon.Valid != tt.valid {
				t.Fatalf("validity mismatch for %q: lat %v lon %v", tt.input, lat.Valid, lon.Valid)
			}
			if tt.valid && (lat.Float64 != tt.lat || lon.Float64 != tt.lon) {
				t.Errorf("got (%f, %f), want (%f, %f)", lat.Float64, lon.Float64, tt.lat, tt.lon)
			}
		})
	}
}

func TestMapDataRecordMinimal(t *testing.T) {
	station, err := MapDataRecord(&EVSEDataRecord{EvseID: "CH*ABC*E123"})
	if err != nil {
		t.Fatalf("MapDataRecord failed: %v", err)
	}

	if station.EvseId != "CH*ABC*E123" {
		t.Errorf("unexpected evse id %q", station.EvseId)
	}
	// the composite address is always built, missing parts render empty
	if !station.Address.Valid || station.Address.String != ",  " {
		t.Errorf("unexpected composite address %q (valid=%v)", station.Address.String, station.Address.Valid)
	}
	if station.StationName.Valid {
		t.Errorf("expected null station name")
	}
	if station.Latitude.Valid || station.Longitude.Valid {
		t.Errorf("expected null coordinates")
	}
	if station.LastUpdate.Valid {
		t.Errorf("expected null last_update")
	}
	if station.Plugs.Valid {
		t.Errorf("expected null plugs")
	}
}

func TestMapDataRecordMissingEvseID(t *testing.T) {
	if _, err := MapDataRecord(&EVSEDataRecord{}); err == nil {
		t.Fatal("expected an error for a record without EvseID")
	}
}

func TestMapDataRecordFull(t *testing.T) {
	isOpen := true
	maxCapacity := int64(4)
	lastUpdate := "2024-12-29T03:15:03.627Z"
	operator := "Example Power"

	record := EVSEDataRecord{
		EvseID:               "CH*ABC*E123",
		ChargingStationNames: []LocalizedText{{Lang: "en", Value: "Main Street Garage"}, {Lang: "de", Value: "Parkhaus"}},
		Address: &Address{
			Country:    "CHE",
			City:       "Zürich",
			Street:     "Bahnhofstrasse",
			PostalCode: "8001",
			HouseNum:   "17",
			TimeZone:   "UTC+01:00",
		},
		GeoCoordinates: &GeoCoordinates{Google: "47.3769 8.5417"},
		Plugs:          gojson.RawMessage(`["Type 2 Outlet","CHAdeMO"]`),
		IsOpen24Hours:  &isOpen,
		MaxCapacity:    &maxCapacity,
		OperatorName:   &operator,
		LastUpdate:     &lastUpdate,
	}

	station, err := MapDataRecord(&record)
	if err != nil {
		t.Fatalf("MapDataRecord failed: %v", err)
	}

	if station.StationName.String != "Main Street Garage" {
		t.Errorf("expected first station name entry, got %q", station.StationName.String)
	}
	if station.Address.String != "Bahnhofstrasse, 8001 Zürich" {
		t.Errorf("unexpected composite address %q", station.Address.String)
	}
	if station.City.String != "Zürich" || station.PostalCode.String != "8001" || station.HouseNum.String != "17" {
		t.Errorf("address parts not preserved: %+v", station)
	}
	if station.Timezone.String != "UTC+01:00" {
		t.Errorf("feed timezone should win over lookup, got %q", station.Timezone.String)
	}
	if station.Latitude.Float64 != 47.3769 || station.Longitude.Float64 != 8.5417 {
		t.Errorf("unexpected coordinates (%f, %f)", station.Latitude.Float64, station.Longitude.Float64)
	}
	if station.Plugs.String != `["Type 2 Outlet","CHAdeMO"]` {
		t.Errorf("plugs not kept as raw JSON: %q", station.Plugs.String)
	}
	if !station.IsOpen24Hours.Valid || !station.IsOpen24Hours.Bool {
		t.Errorf("is_open_24_hours lost")
	}
	if station.MaxCapacity.Int64 != 4 {
		t.Errorf("max_capacity lost")
	}

	want := time.Date(2024, 12, 29, 3, 15, 3, 627000000, time.UTC)
	if !station.LastUpdate.Valid || !station.LastUpdate.Time.Equal(want) {
		t.Errorf("unexpected last_update %v", station.LastUpdate)
	}
}

func TestMapDataRecordMalformedTimestamp(t *testing.T) {
	bad := "yesterday-ish"
	station, err := MapDataRecord(&EVSEDataRecord{EvseID: "CH*ABC*E1", LastUpdate: &bad})
	if err != nil {
		t.Fatalf("malformed timestamp must not fail the record: %v", err)
	}
	if station.LastUpdate.Valid {
		t.Errorf("malformed timestamp should map to null")
	}
}

func TestMapDataRecordTimestampWithoutFraction(t *testing.T) {
	value := "2024-12-29T03:15:03Z"
	station, err := MapDataRecord(&EVSEDataRecord{EvseID: "CH*ABC*E1", LastUpdate: &value})
	if err != nil {
		t.Fatalf("MapDataRecord failed: %v", err)
	}
	want := time.Date(2024, 12, 29, 3, 15, 3, 0, time.UTC)
	if !station.LastUpdate.Valid || !station.LastUpdate.Time.Equal(want) {
		t.Errorf("unexpected last_update %v", station.LastUpdate)
	}
}
