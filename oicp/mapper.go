package oicp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"

	"chargewatch/db"
	"chargewatch/tzlookup"
)

// lastUpdate comes as ISO-8601 with a trailing Z which is stripped before
// parsing, leaving a timezone-naive timestamp. Parse accepts optional
// fractional seconds on top of this layout.
const lastUpdateLayout = "2006-01-02T15:04:05"

// MapDataRecord flattens one metadata record into a station row. Every field
// except EvseID is optional; the only mapping failure is a missing identifier.
func MapDataRecord(record *EVSEDataRecord) (*db.Station, error) {
	if record.EvseID == "" {
		return nil, fmt.Errorf("%w: record missing EvseID", ErrSchema)
	}

	station := db.Station{EvseId: record.EvseID}

	if len(record.ChargingStationNames) > 0 && record.ChargingStationNames[0].Value != "" {
		station.StationName = null.StringFrom(record.ChargingStationNames[0].Value)
	}

	// The composite address is always built, with missing parts rendering as
	// empty strings rather than nulls - legacy consumers key on this format.
	address := Address{}
	if record.Address != nil {
		address = *record.Address
	}
	station.Address = null.StringFrom(fmt.Sprintf("%s, %s %s", address.Street, address.PostalCode, address.City))
	station.Street = nullableString(address.Street)
	station.HouseNum = nullableString(address.HouseNum)
	station.Floor = nullableString(address.Floor)
	station.PostalCode = nullableString(address.PostalCode)
	station.City = nullableString(address.City)
	station.Region = nullableString(address.Region)
	station.Country = nullableString(address.Country)
	station.Timezone = nullableString(address.TimeZone)

	if record.GeoCoordinates != nil {
		station.Latitude, station.Longitude = ParseCoordinates(record.GeoCoordinates.Google)
	}
	if !station.Timezone.Valid && station.Latitude.Valid && station.Longitude.Valid {
		station.Timezone = nullableString(tzlookup.TimezoneName(station.Latitude.Float64, station.Longitude.Float64))
	}

	station.Accessibility = null.StringFromPtr(record.Accessibility)
	station.AccessibilityLocation = null.StringFromPtr(record.AccessibilityLocation)
	station.AdditionalInfo = rawString(record.AdditionalInfo)
	station.AuthenticationModes = rawString(record.AuthenticationModes)
	station.CalibrationLawDataAvailability = null.StringFromPtr(record.CalibrationLawDataAvailability)
	station.ChargingFacilities = rawString(record.ChargingFacilities)
	station.ChargingPoolId = null.StringFromPtr(record.ChargingPoolID)
	station.ChargingStationId = null.StringFromPtr(record.ChargingStationID)
	station.ChargingStationLocationReference = rawString(record.ChargingStationLocationReference)
	station.ClearinghouseId = null.StringFromPtr(record.ClearinghouseID)
	station.DynamicInfoAvailable = null.StringFromPtr(record.DynamicInfoAvailable)
	station.DynamicPowerLevel = null.BoolFromPtr(record.DynamicPowerLevel)
	station.EnergySource = rawString(record.EnergySource)
	station.EntranceCoordinates = rawString(record.GeoChargingPointEntrance)
	station.EnvironmentalImpact = rawString(record.EnvironmentalImpact)
	station.HardwareManufacturer = null.StringFromPtr(record.HardwareManufacturer)
	station.HotlinePhoneNumber = null.StringFromPtr(record.HotlinePhoneNumber)
	station.HubOperatorId = null.StringFromPtr(record.HubOperatorID)
	station.IsHubjectCompatible = null.BoolFromPtr(record.IsHubjectCompatible)
	station.IsOpen24Hours = null.BoolFromPtr(record.IsOpen24Hours)
	station.LocationImage = rawString(record.LocationImage)
	station.MaxCapacity = null.IntFromPtr(record.MaxCapacity)
	station.OpeningTimes = rawString(record.OpeningTimes)
	station.OperatorId = null.StringFromPtr(record.OperatorID)
	station.OperatorName = null.StringFromPtr(record.OperatorName)
	station.PaymentOptions = rawString(record.PaymentOptions)
	station.Plugs = rawString(record.Plugs)
	station.RenewableEnergy = null.BoolFromPtr(record.RenewableEnergy)
	station.SubOperatorName = null.StringFromPtr(record.SubOperatorName)
	station.ValueAddedServices = rawString(record.ValueAddedServices)

	if record.LastUpdate != nil {
		lastUpdate, err := parseLastUpdate(*record.LastUpdate)
		if err != nil {
			// treated as absent, never aborts the batch
			log.Warnf("Station %s: %s", record.EvseID, err)
		}
		station.LastUpdate = lastUpdate
	}

	return &station, nil
}

// ParseCoordinates splits the provider's "lat lon" string. Anything that is
// not two parseable floats - including the literal "None None" the feed emits
// for unknown positions - resolves to two nulls, never an error.
func ParseCoordinates(coords string) (null.Float, null.Float) {
	if coords == "" || coords == "None None" {
		return null.Float{}, null.Float{}
	}
	parts := strings.Fields(coords)
	if len(parts) != 2 {
		return null.Float{}, null.Float{}
	}
	lat, latErr := strconv.ParseFloat(parts[0], 64)
	lon, lonErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || lonErr != nil {
		return null.Float{}, null.Float{}
	}
	return null.FloatFrom(lat), null.FloatFrom(lon)
}

func parseLastUpdate(value string) (null.Time, error) {
	if value == "" {
		return null.Time{}, nil
	}
	parsed, err := time.Parse(lastUpdateLayout, strings.TrimSuffix(value, "Z"))
	if err != nil {
		return null.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}
	return null.TimeFrom(parsed), nil
}

func nullableString(value string) null.String {
	if value == "" {
		return null.String{}
	}
	return null.StringFrom(value)
}

// rawString keeps a nested member as its JSON text, null when absent. Lossless
// but opaque to relational querying.
func rawString(raw gojson.RawMessage) null.String {
	if len(raw) == 0 || string(raw) == "null" {
		return null.String{}
	}
	return null.StringFrom(string(raw))
}
