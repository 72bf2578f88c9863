package db

import "testing"

func TestValidTableName(t *testing.T) {
	valid := []string{"charging_stations", "charging_station_status_history", "t1", "_x"}
	for _, name := range valid {
		if !ValidTableName(name) {
			t.Errorf("%q should be a valid table name", name)
		}
	}

	invalid := []string{"", "charging stations", "stations;drop table x", "`stations`", "stations--", "sta.tions"}
	for _, name := range invalid {
		if ValidTableName(name) {
			t.Errorf("%q should be rejected", name)
		}
	}
}
