package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/portalsur/portalsur/internal/currency"
	"github.com/portalsur/portalsur/internal/gate"
	"github.com/portalsur/portalsur/internal/property"
	"github.com/portalsur/portalsur/internal/store"
)

const testSecret = "sur2024"

func testServer(t *testing.T) *Server {
	t.Helper()
	medium := store.NewFileMedium(filepath.Join(t.TempDir(), "catalog.json"))
	return NewServer(store.New(medium), gate.New(testSecret))
}

func loginAdmin(t *testing.T, srv *Server) {
	t.Helper()
	body := fmt.Sprintf(`{"secret":%q}`, testSecret)
	r := httptest.NewRequest("POST", "/api/session", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func testPayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"subtitle":    "frente al mar",
		"location":    "Viña del Mar, Chile",
		"price":       9500,
		"currency":    "UF",
		"type":        "apartment",
		"bedrooms":    3,
		"bathrooms":   2,
		"area":        120,
		"isPublished": true,
	}
}

func postProperty(t *testing.T, srv *Server, payload map[string]interface{}) property.Property {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	r := httptest.NewRequest("POST", "/api/properties", bytes.NewReader(data))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}

	var p property.Property
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	return p
}

func listProperties(t *testing.T, srv *Server, query string) []property.Property {
	t.Helper()
	r := httptest.NewRequest("GET", "/api/properties"+query, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d, body = %s", w.Code, w.Body.String())
	}

	var out []property.Property
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCreateRequiresPrivilege(t *testing.T) {
	srv := testServer(t)

	data, _ := json.Marshal(testPayload("Depto Viña"))
	r := httptest.NewRequest("POST", "/api/properties", bytes.NewReader(data))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestCreateThenList(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	created := postProperty(t, srv, testPayload("Depto Viña"))
	if created.ID == "" {
		t.Error("expected assigned id")
	}

	got := listProperties(t, srv, "")
	if len(got) != 1 || got[0].ID != created.ID {
		t.Errorf("list = %+v, want the created record", got)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	payload := testPayload("sin dormitorios")
	payload["bedrooms"] = 0

	data, _ := json.Marshal(payload)
	r := httptest.NewRequest("POST", "/api/properties", bytes.NewReader(data))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "bedrooms") {
		t.Errorf("body = %q, want offending field named", w.Body.String())
	}
}

func TestCreateAcceptsLegacyStatus(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	payload := testPayload("borrador")
	delete(payload, "isPublished")
	payload["status"] = "Draft"

	created := postProperty(t, srv, payload)
	if created.IsPublished {
		t.Error("legacy Draft status should map to unpublished")
	}
}

func TestListFiltersAndRedacts(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	withPrivate := testPayload("Casa grande")
	withPrivate["type"] = "house"
	withPrivate["bedrooms"] = 5
	withPrivate["privateData"] = map[string]string{"ownerName": "P. Reyes"}
	postProperty(t, srv, withPrivate)

	small := testPayload("Depto chico")
	small["bedrooms"] = 1
	postProperty(t, srv, small)

	unpublished := testPayload("Oculto")
	unpublished["isPublished"] = false
	postProperty(t, srv, unpublished)

	// Privileged viewer sees everything, private data included.
	got := listProperties(t, srv, "")
	if len(got) != 3 {
		t.Fatalf("privileged list len = %d, want 3", len(got))
	}

	// Public viewer: unpublished excluded, private data stripped.
	logout(t, srv)
	got = listProperties(t, srv, "")
	if len(got) != 2 {
		t.Fatalf("public list len = %d, want 2", len(got))
	}
	for _, p := range got {
		if p.PrivateData != nil {
			t.Errorf("private data leaked on %q", p.Title)
		}
	}

	// Bedroom filter applies on top of visibility.
	got = listProperties(t, srv, "?min_bedrooms=4")
	if len(got) != 1 || got[0].Title != "Casa grande" {
		t.Errorf("filtered list = %+v, want only Casa grande", got)
	}
}

func TestListBadFilterParam(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/api/properties?min_bedrooms=many", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateReplacesRecord(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	created := postProperty(t, srv, testPayload("antes"))

	payload := testPayload("después")
	payload["bedrooms"] = 4
	data, _ := json.Marshal(payload)

	r := httptest.NewRequest("PUT", "/api/properties/"+created.ID, bytes.NewReader(data))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got := listProperties(t, srv, "")
	if got[0].Title != "después" || got[0].Bedrooms != 4 {
		t.Errorf("record not replaced: %+v", got[0])
	}
}

func TestUpdateMissingIs404(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	data, _ := json.Marshal(testPayload("fantasma"))
	r := httptest.NewRequest("PUT", "/api/properties/no-such-id", bytes.NewReader(data))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateBodyIDMismatch(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	created := postProperty(t, srv, testPayload("uno"))

	payload := testPayload("dos")
	payload["id"] = "different-id"
	data, _ := json.Marshal(payload)

	r := httptest.NewRequest("PUT", "/api/properties/"+created.ID, bytes.NewReader(data))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDeleteByQueryParam(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	created := postProperty(t, srv, testPayload("efímero"))

	r := httptest.NewRequest("DELETE", "/api/properties?id="+created.ID, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if got := listProperties(t, srv, ""); len(got) != 0 {
		t.Errorf("list len = %d, want 0", len(got))
	}
}

func TestDeleteMissingIs404(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	r := httptest.NewRequest("DELETE", "/api/properties?id=no-such-id", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteWithoutID(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	r := httptest.NewRequest("DELETE", "/api/properties", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPriceFilterAcrossCurrencies(t *testing.T) {
	srv := testServer(t)
	loginAdmin(t, srv)

	uf := testPayload("en UF")
	uf["price"] = 10000
	uf["currency"] = string(currency.UF)
	postProperty(t, srv, uf)

	clp := testPayload("en pesos")
	clp["price"] = 300000000
	clp["currency"] = string(currency.CLP)
	postProperty(t, srv, clp)

	// Band in base-unit CLP that only the peso listing falls into.
	got := listProperties(t, srv, "?min_price=250000000&max_price=350000000")
	if len(got) != 1 || got[0].Title != "en pesos" {
		t.Errorf("filtered = %+v, want only the peso listing", got)
	}
}
