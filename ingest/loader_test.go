package ingest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"chargewatch/db"
	"chargewatch/oicp"
)

// Bulk loading treats fetch and shape failures as fatal; both must surface
// before any transaction is opened (the zero DbDetails would panic otherwise).

func TestLoadFailsOnHttpError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	loader := NewBulkLoader(client, db.DbDetails{})
	if err := loader.Load(context.Background()); !errors.Is(err, oicp.ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestLoadFailsOnMissingCollection(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"EVSEStatuses": []}`))
	})

	loader := NewBulkLoader(client, db.DbDetails{})
	if err := loader.Load(context.Background()); !errors.Is(err, oicp.ErrSchema) {
		t.Errorf("expected ErrSchema, got %v", err)
	}
}
