package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"storage-rental-api/internal/adapters/blob"
	"storage-rental-api/internal/stores"
	"storage-rental-api/pkg/lambda"
)

func decodeBody(t *testing.T, resp *lambda.Response) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("response body is not a JSON object: %s", resp.Body)
	}
	return out
}

func decodeList(t *testing.T, resp *lambda.Response) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("response body is not a JSON array: %s", resp.Body)
	}
	return out
}

func facilityCreateBody(name, location, facilityType string) []byte {
	image := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	body, _ := json.Marshal(map[string]any{
		"facility_name": name,
		"location":      location,
		"type":          facilityType,
		"image":         image,
		"capacity":      5,
		"price":         70,
	})
	return body
}

func TestFacilityHandler_HandleCreate(t *testing.T) {
	records := stores.NewMemoryStore()
	blobs := blob.NewMemoryBlobStore("")
	h := NewFacilityHandler(records, blobs, nil)
	ctx := context.Background()

	resp, err := h.HandleCreate(ctx, &lambda.Request{Body: facilityCreateBody("SecureVault", "Durban", "Locker")})
	if err != nil {
		t.Fatalf("HandleCreate() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("HandleCreate() status = %d, want 201", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	facilityID, ok := body["facility_id"].(string)
	if !ok || facilityID == "" {
		t.Fatalf("HandleCreate() body = %v, want facility_id string", body)
	}

	stored, err := records.Get(ctx, facilityID)
	if err != nil {
		t.Fatalf("stored record missing: %v", err)
	}
	if _, hasRaw := stored["image"]; hasRaw {
		t.Error("stored record contains the raw base64 image")
	}
	ref, _ := stored["image_reference"].(string)
	if !strings.HasPrefix(ref, "memory://blobs/facilities/securevault-") {
		t.Errorf("image_reference = %q, want blob URL", ref)
	}
	if blobs.Len() != 1 {
		t.Errorf("blob store holds %d objects, want 1", blobs.Len())
	}
}

func TestFacilityHandler_HandleCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{`},
		{name: "missing facility_name", body: `{"location":"Durban","type":"Locker","image":"aW1n","capacity":5,"price":70}`},
		{name: "missing image", body: `{"facility_name":"X","location":"Durban","type":"Locker","capacity":5,"price":70}`},
		{name: "missing price", body: `{"facility_name":"X","location":"Durban","type":"Locker","image":"aW1n","capacity":5}`},
		{name: "invalid base64 image", body: `{"facility_name":"X","location":"Durban","type":"Locker","image":"!!!not-b64!!!","capacity":5,"price":70}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := stores.NewMemoryStore()
			blobs := blob.NewMemoryBlobStore("")
			h := NewFacilityHandler(records, blobs, nil)

			resp, err := h.HandleCreate(context.Background(), &lambda.Request{Body: []byte(tt.body)})
			if err != nil {
				t.Fatalf("HandleCreate() error = %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("HandleCreate() status = %d, want 400", resp.StatusCode)
			}
			if blobs.Len() != 0 {
				t.Error("rejected create still uploaded a blob")
			}
			if all, _ := records.Scan(context.Background()); len(all) != 0 {
				t.Error("rejected create still wrote a record")
			}
		})
	}
}

func TestFacilityHandler_HandleSearch(t *testing.T) {
	records := stores.NewMemoryStore()
	h := NewFacilityHandler(records, blob.NewMemoryBlobStore(""), nil)
	ctx := context.Background()

	seed := []stores.Record{
		{"facility_id": "f-1", "location": "Durban", "type": "Locker"},
		{"facility_id": "f-2", "location": "Durban", "type": "Garage"},
		{"facility_id": "f-3", "location": "Pretoria", "type": "Locker"},
	}
	for _, rec := range seed {
		if err := records.Put(ctx, rec["facility_id"].(string), rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	tests := []struct {
		name   string
		params map[string]string
		want   int
	}{
		{name: "by location", params: map[string]string{"location": "Durban"}, want: 2},
		{name: "by type", params: map[string]string{"type": "Locker"}, want: 2},
		{name: "intersection", params: map[string]string{"location": "Durban", "type": "Locker"}, want: 1},
		{name: "no params equals list", params: map[string]string{}, want: 3},
		{name: "no match", params: map[string]string{"location": "Cape Town"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.HandleSearch(ctx, &lambda.Request{QueryParams: tt.params})
			if err != nil {
				t.Fatalf("HandleSearch() error = %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("HandleSearch() status = %d, want 200", resp.StatusCode)
			}
			if got := decodeList(t, resp); len(got) != tt.want {
				t.Errorf("HandleSearch() returned %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFacilityHandler_HandleListEmpty(t *testing.T) {
	h := NewFacilityHandler(stores.NewMemoryStore(), blob.NewMemoryBlobStore(""), nil)

	resp, err := h.HandleList(context.Background(), &lambda.Request{})
	if err != nil {
		t.Fatalf("HandleList() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("HandleList() status = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != "[]" {
		t.Errorf("HandleList() body = %s, want empty JSON array", resp.Body)
	}
}

func TestFacilityHandler_HandleDeleteTwice(t *testing.T) {
	records := stores.NewMemoryStore()
	h := NewFacilityHandler(records, blob.NewMemoryBlobStore(""), nil)
	ctx := context.Background()

	_ = records.Put(ctx, "f-1", stores.Record{"facility_id": "f-1"})

	req := &lambda.Request{PathParams: map[string]string{"facility_id": "f-1"}}

	resp, err := h.HandleDelete(ctx, req)
	if err != nil {
		t.Fatalf("HandleDelete() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("first delete status = %d, want 200", resp.StatusCode)
	}

	resp, err = h.HandleDelete(ctx, req)
	if err != nil {
		t.Fatalf("HandleDelete() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

// End-to-end through the route table: create a facility, then find it
// via search the way a client would.
func TestFacilityRouter_CreateThenSearch(t *testing.T) {
	records := stores.NewMemoryStore()
	router := NewFacilityRouter(NewFacilityHandler(records, blob.NewMemoryBlobStore(""), nil), nil)
	ctx := context.Background()

	createResp := router.Dispatch(ctx, &lambda.Request{
		Method:        http.MethodPost,
		RouteTemplate: RouteFacilities,
		Body:          facilityCreateBody("X", "Durban", "Locker"),
	})
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", createResp.StatusCode, createResp.Body)
	}
	facilityID := decodeBody(t, createResp)["facility_id"].(string)

	searchResp := router.Dispatch(ctx, &lambda.Request{
		Method:        http.MethodGet,
		RouteTemplate: RouteFacilitiesSearch,
		QueryParams:   map[string]string{"location": "Durban"},
	})
	if searchResp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d, want 200", searchResp.StatusCode)
	}

	found := false
	for _, rec := range decodeList(t, searchResp) {
		if rec["facility_id"] == facilityID {
			found = true
			if ref, _ := rec["image_reference"].(string); !strings.Contains(ref, "://") {
				t.Errorf("image_reference = %q, want a URL", ref)
			}
		}
	}
	if !found {
		t.Error("search by location did not include the created facility")
	}
}
