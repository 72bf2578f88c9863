package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// Station is one row of charging_stations. Only EvseId is guaranteed to be
// populated; a placeholder row created by the status poller carries nothing else
// until the next metadata load fills it in.
type Station struct {
	Id     int64  `db:"id"`
	EvseId string `db:"evse_id"`

	StationName null.String `db:"station_name"`
	Address     null.String `db:"address"`
	Street      null.String `db:"street"`
	HouseNum    null.String `db:"house_num"`
	Floor       null.String `db:"floor"`
	PostalCode  null.String `db:"postal_code"`
	City        null.String `db:"city"`
	Region      null.String `db:"region"`
	Country     null.String `db:"country"`
	Timezone    null.String `db:"timezone"`
	Latitude    null.Float  `db:"latitude"`
	Longitude   null.Float  `db:"longitude"`

	Accessibility                    null.String `db:"accessibility"`
	AccessibilityLocation            null.String `db:"accessibility_location"`
	AdditionalInfo                   null.String `db:"additional_info"`
	AuthenticationModes              null.String `db:"authentication_modes"`
	CalibrationLawDataAvailability   null.String `db:"calibration_law_data_availability"`
	ChargingFacilities               null.String `db:"charging_facilities"`
	ChargingPoolId                   null.String `db:"charging_pool_id"`
	ChargingStationId                null.String `db:"charging_station_id"`
	ChargingStationLocationReference null.String `db:"charging_station_location_reference"`
	ClearinghouseId                  null.String `db:"clearinghouse_id"`
	DynamicInfoAvailable             null.String `db:"dynamic_info_available"`
	DynamicPowerLevel                null.Bool   `db:"dynamic_power_level"`
	EnergySource                     null.String `db:"energy_source"`
	EntranceCoordinates              null.String `db:"entrance_coordinates"`
	EnvironmentalImpact              null.String `db:"environmental_impact"`
	HardwareManufacturer             null.String `db:"hardware_manufacturer"`
	HotlinePhoneNumber               null.String `db:"hotline_phone_number"`
	HubOperatorId                    null.String `db:"hub_operator_id"`
	IsHubjectCompatible              null.Bool   `db:"is_hubject_compatible"`
	IsOpen24Hours                    null.Bool   `db:"is_open_24_hours"`
	LocationImage                    null.String `db:"location_image"`
	MaxCapacity                      null.Int    `db:"max_capacity"`
	OpeningTimes                     null.String `db:"opening_times"`
	OperatorId                       null.String `db:"operator_id"`
	OperatorName                     null.String `db:"operator_name"`
	PaymentOptions                   null.String `db:"payment_options"`
	Plugs                            null.String `db:"plugs"`
	RenewableEnergy                  null.Bool   `db:"renewable_energy"`
	SubOperatorName                  null.String `db:"sub_operator_name"`
	ValueAddedServices               null.String `db:"value_added_services"`

	LastUpdate null.Time `db:"last_update"`
}

const stationColumns = "evse_id, station_name, address, street, house_num, floor, postal_code, city, region, country, timezone, latitude, longitude, accessibility, accessibility_location, additional_info, authentication_modes, calibration_law_data_availability, charging_facilities, charging_pool_id, charging_station_id, charging_station_location_reference, clearinghouse_id, dynamic_info_available, dynamic_power_level, energy_source, entrance_coordinates, environmental_impact, hardware_manufacturer, hotline_phone_number, hub_operator_id, is_hubject_compatible, is_open_24_hours, location_image, max_capacity, opening_times, operator_id, operator_name, payment_options, plugs, renewable_energy, sub_operator_name, value_added_services, last_update"

const stationNamedValues = ":evse_id,:station_name,:address,:street,:house_num,:floor,:postal_code,:city,:region,:country,:timezone,:latitude,:longitude,:accessibility,:accessibility_location,:additional_info,:authentication_modes,:calibration_law_data_availability,:charging_facilities,:charging_pool_id,:charging_station_id,:charging_station_location_reference,:clearinghouse_id,:dynamic_info_available,:dynamic_power_level,:energy_source,:entrance_coordinates,:environmental_impact,:hardware_manufacturer,:hotline_phone_number,:hub_operator_id,:is_hubject_compatible,:is_open_24_hours,:location_image,:max_capacity,:opening_times,:operator_id,:operator_name,:payment_options,:plugs,:renewable_energy,:sub_operator_name,:value_added_services,:last_update"

const stationUpsertUpdates = "station_name=VALUES(station_name), address=VALUES(address), street=VALUES(street), house_num=VALUES(house_num), floor=VALUES(floor), postal_code=VALUES(postal_code), city=VALUES(city), region=VALUES(region), country=VALUES(country), timezone=VALUES(timezone), latitude=VALUES(latitude), longitude=VALUES(longitude), accessibility=VALUES(accessibility), accessibility_location=VALUES(accessibility_location), additional_info=VALUES(additional_info), authentication_modes=VALUES(authentication_modes), calibration_law_data_availability=VALUES(calibration_law_data_availability), charging_facilities=VALUES(charging_facilities), charging_pool_id=VALUES(charging_pool_id), charging_station_id=VALUES(charging_station_id), charging_station_location_reference=VALUES(charging_station_location_reference), clearinghouse_id=VALUES(clearinghouse_id), dynamic_info_available=VALUES(dynamic_info_available), dynamic_power_level=VALUES(dynamic_power_level), energy_source=VALUES(energy_source), entrance_coordinates=VALUES(entrance_coordinates), environmental_impact=VALUES(environmental_impact), hardware_manufacturer=VALUES(hardware_manufacturer), hotline_phone_number=VALUES(hotline_phone_number), hub_operator_id=VALUES(hub_operator_id), is_hubject_compatible=VALUES(is_hubject_compatible), is_open_24_hours=VALUES(is_open_24_hours), location_image=VALUES(location_image), max_capacity=VALUES(max_capacity), opening_times=VALUES(opening_times), operator_id=VALUES(operator_id), operator_name=VALUES(operator_name), payment_options=VALUES(payment_options), plugs=VALUES(plugs), renewable_energy=VALUES(renewable_energy), sub_operator_name=VALUES(sub_operator_name), value_added_services=VALUES(value_added_services), last_update=VALUES(last_update)"

func GetStationRecord(ctx context.Context, db DbDetails, evseId string) (*Station, error) {
	station := Station{}
	err := db.GeneralDb.GetContext(ctx, &station,
		"SELECT id, "+stationColumns+" FROM charging_stations WHERE evse_id = ?", evseId)
	statsCollector.IncDbQuery("select station", err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

func CountStations(ctx context.Context, db DbDetails) (int64, error) {
	var count int64
	err := db.GeneralDb.GetContext(ctx, &count, "SELECT COUNT(*) FROM charging_stations")
	statsCollector.IncDbQuery("count stations", err)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertStation inserts the station or, if a row with this evse_id already
// exists, overwrites every non-identity column. Columns absent from the mapped
// record are written back to NULL - full replace, not a sparse merge.
func UpsertStation(ctx context.Context, ext sqlx.ExtContext, station *Station) error {
	_, err := sqlx.NamedExecContext(ctx, ext,
		"INSERT INTO charging_stations ("+stationColumns+") VALUES ("+stationNamedValues+") ON DUPLICATE KEY UPDATE "+stationUpsertUpdates,
		station)
	statsCollector.IncDbQuery("upsert station", err)
	return err
}

// EnsureStation creates a placeholder row carrying only the evse_id. The
// INSERT IGNORE makes it a no-op when the row already exists, so a status
// update referencing an unknown station never trips the unique key.
// Returns whether a row was actually inserted.
func EnsureStation(ctx context.Context, ext sqlx.ExtContext, evseId string) (bool, error) {
	res, err := ext.ExecContext(ctx,
		"INSERT IGNORE INTO charging_stations (evse_id) VALUES (?)", evseId)
	statsCollector.IncDbQuery("ensure station", err)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
