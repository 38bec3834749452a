// file: internal/server/beneficiary_service_test.go
// version: 1.0.0
// guid: de74a455-5020-4ecb-ad9c-7ab580dd0900

package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/models"
)

func seedBeneficiaries(t *testing.T, store *database.MockStore) {
	t.Helper()
	for _, b := range []models.Beneficiary{
		{OrgID: testOrg, Name: "Ahmet Yılmaz", Phone: "+905551112233", City: "İstanbul", Status: models.BeneficiaryActive},
		{OrgID: testOrg, Name: "Mehmet Öztürk", Phone: "+905551112234", City: "Ankara", Status: models.BeneficiaryActive},
		{OrgID: testOrg, Name: "Ayşe Demir", Phone: "+905551112235", City: "İzmir", Status: models.BeneficiaryPending},
	} {
		copy := b
		if _, err := store.CreateBeneficiary(&copy); err != nil {
			t.Fatalf("CreateBeneficiary: %v", err)
		}
	}
}

type listEnvelope struct {
	Items json.RawMessage `json:"items"`
	Count int             `json:"count"`
}

func TestBeneficiaryCRUD(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")

	// Create
	w := doJSON(s, http.MethodPost, "/api/beneficiaries", token, map[string]any{
		"name":   "Fatma Kaya",
		"city":   "Bursa",
		"status": "active",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Beneficiary
	decodeData(t, w, &created)
	if created.ID == "" || created.Name != "Fatma Kaya" {
		t.Fatalf("unexpected created beneficiary: %+v", created)
	}

	// Get
	w = doJSON(s, http.MethodGet, "/api/beneficiaries/"+created.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}

	// Update
	w = doJSON(s, http.MethodPut, "/api/beneficiaries/"+created.ID, token, map[string]any{
		"name": "Fatma Kaya",
		"city": "Eskişehir",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated models.Beneficiary
	decodeData(t, w, &updated)
	if updated.City != "Eskişehir" {
		t.Errorf("expected updated city, got %q", updated.City)
	}

	// Delete
	w = doJSON(s, http.MethodDelete, "/api/beneficiaries/"+created.ID, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = doJSON(s, http.MethodGet, "/api/beneficiaries/"+created.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestBeneficiaryCreateRejectsBadStatus(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")

	w := doJSON(s, http.MethodPost, "/api/beneficiaries", token, map[string]any{
		"name":   "Bozuk",
		"status": "bilinmiyor",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBeneficiaryListFilters(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")
	seedBeneficiaries(t, store)

	w := doJSON(s, http.MethodGet, "/api/beneficiaries?status=active", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var envelope listEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Count != 2 {
		t.Errorf("expected 2 active beneficiaries, got %d", envelope.Count)
	}
}

func TestBeneficiarySearchDiacriticTolerant(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")
	seedBeneficiaries(t, store)

	// ASCII query must find the Turkish-spelled record.
	w := doJSON(s, http.MethodGet, "/api/beneficiaries/search?q=ayse", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var envelope listEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var results []struct {
		Item  models.Beneficiary `json:"item"`
		Score float64            `json:"score"`
	}
	if err := json.Unmarshal(envelope.Items, &results); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(results))
	}
	if results[0].Item.Name != "Ayşe Demir" {
		t.Errorf("expected Ayşe Demir, got %q", results[0].Item.Name)
	}
	if results[0].Score != 1.0 {
		t.Errorf("expected substring score 1.0, got %v", results[0].Score)
	}
}

func TestBeneficiarySearchTypoTolerant(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")
	seedBeneficiaries(t, store)

	// One edit away from "ahmet" within a longer name.
	w := doJSON(s, http.MethodGet, "/api/beneficiaries/search?q=ahmed&threshold=0.7", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var envelope listEnvelope
	json.Unmarshal(w.Body.Bytes(), &envelope)
	var results []struct {
		Item models.Beneficiary `json:"item"`
	}
	json.Unmarshal(envelope.Items, &results)
	found := false
	for _, r := range results {
		if r.Item.Name == "Ahmet Yılmaz" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected fuzzy match on Ahmet Yılmaz, got %v", results)
	}
}

func TestBeneficiarySuggestions(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")
	seedBeneficiaries(t, store)

	w := doJSON(s, http.MethodGet, "/api/beneficiaries/suggestions?q=ah", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var suggestions []string
	decodeData(t, w, &suggestions)
	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
}

func TestBeneficiaryImportCSV(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "parola123")

	csvBody := "name,city\nYeni Kişi,Adana\nBaşka Kişi,Mersin\n"
	req := doRaw(s, http.MethodPost, "/api/beneficiaries/import", token, strings.NewReader(csvBody))
	if req.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", req.Code, req.Body.String())
	}

	count, _ := store.CountBeneficiaries(testOrg)
	if count != 2 {
		t.Errorf("expected 2 imported beneficiaries, got %d", count)
	}
}

func TestBeneficiaryRBACViewerCannotCreate(t *testing.T) {
	s, store := newTestServer(t)
	seedAdmin(t, store, "parola123")
	_, viewerToken := seedRole(t, store, models.RoleViewer)

	w := doJSON(s, http.MethodPost, "/api/beneficiaries", viewerToken, map[string]any{"name": "X"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", w.Code)
	}

	w = doJSON(s, http.MethodGet, "/api/beneficiaries", viewerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("viewer should read, got %d", w.Code)
	}
}
