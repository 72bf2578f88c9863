package oicp

import (
	"errors"
	"testing"

	gojson "github.com/goccy/go-json"
)

func TestObservationsTwoTierValidation(t *testing.T) {
	// three usable elements plus one missing its EVSEStatusRecord collection:
	// the broken element is dropped, the rest of the batch survives
	body := `{
		"EVSEStatuses": [
			{"OperatorID": "CH*ABC", "EVSEStatusRecord": [{"EvseID": "CH*ABC*E1", "EVSEStatus": "Available"}]},
			{"OperatorID": "CH*DEF"},
			{"OperatorID": "CH*GHI", "EVSEStatusRecord": [{"EvseID": "CH*GHI*E1", "EVSEStatus": "Occupied"}]},
			{"OperatorID": "CH*JKL", "EVSEStatusRecord": [{"EvseID": "CH*JKL*E1", "EVSEStatus": "OutOfService"}]}
		]
	}`

	doc := StatusDocument{}
	if err := gojson.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	observations, err := doc.Observations()
	if err != nil {
		t.Fatalf("Observations failed: %v", err)
	}
	if len(observations) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(observations))
	}
	if observations[0].EvseId != "CH*ABC*E1" || observations[0].Status != "Available" {
		t.Errorf("unexpected first observation %+v", observations[0])
	}
}

func TestObservationsMissingTopLevelCollection(t *testing.T) {
	doc := StatusDocument{}
	if err := gojson.Unmarshal([]byte(`{"something": "else"}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, err := doc.Observations(); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestObservationsSkipsIncompleteRecords(t *testing.T) {
	body := `{
		"EVSEStatuses": [
			{"EVSEStatusRecord": [
				{"EvseID": "CH*ABC*E1", "EVSEStatus": "Available"},
				{"EvseID": "CH*ABC*E2"},
				{"EVSEStatus": "Occupied"},
				{"EvseID": "", "EVSEStatus": "Occupied"}
			]}
		]
	}`

	doc := StatusDocument{}
	if err := gojson.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	observations, err := doc.Observations()
	if err != nil {
		t.Fatalf("Observations failed: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(observations))
	}
}

func TestObservationsEmptyCollections(t *testing.T) {
	doc := StatusDocument{}
	if err := gojson.Unmarshal([]byte(`{"EVSEStatuses": []}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	observations, err := doc.Observations()
	if err != nil {
		t.Fatalf("an empty collection is not a shape error: %v", err)
	}
	if len(observations) != 0 {
		t.Fatalf("expected no observations, got %d", len(observations))
	}
}
