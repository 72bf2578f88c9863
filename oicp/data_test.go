package oicp

import (
	"errors"
	"testing"

	gojson "github.com/goccy/go-json"
)

func TestRecordsFlattensPages(t *testing.T) {
	body := `{
		"EVSEData": [
			{"OperatorID": "CH*ABC", "EVSEDataRecord": [{"EvseID": "CH*ABC*E1"}, {"EvseID": "CH*ABC*E2"}]},
			{"OperatorID": "CH*DEF", "EVSEDataRecord": [{"EvseID": "CH*DEF*E1"}]}
		]
	}`

	doc := DataDocument{}
	if err := gojson.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	records, err := doc.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[2].EvseID != "CH*DEF*E1" {
		t.Errorf("unexpected record order: %+v", records[2])
	}
}

func TestRecordsMissingTopLevelCollection(t *testing.T) {
	doc := DataDocument{}
	if err := gojson.Unmarshal([]byte(`{}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := doc.Records(); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestDataRecordKeepsNestedMembersRaw(t *testing.T) {
	body := `{
		"EvseID": "CH*ABC*E1",
		"AuthenticationModes": ["NFC RFID Classic", "REMOTE"],
		"OpeningTimes": [{"Period": [{"begin": "07:00", "end": "19:00"}], "on": "Everyday"}]
	}`

	record := EVSEDataRecord{}
	if err := gojson.Unmarshal([]byte(body), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if string(record.AuthenticationModes) != `["NFC RFID Classic", "REMOTE"]` {
		t.Errorf("authentication modes not raw: %s", record.AuthenticationModes)
	}
	if record.OpeningTimes == nil {
		t.Errorf("opening times lost")
	}
	if record.Address != nil {
		t.Errorf("absent address should stay nil")
	}
}
