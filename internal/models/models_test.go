package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateFacilityRequest_Validate(t *testing.T) {
	valid := func() CreateFacilityRequest {
		return CreateFacilityRequest{
			FacilityName: "SecureVault",
			Location:     "Durban",
			Type:         "Locker",
			Image:        "aW1hZ2U=",
			Capacity:     5,
			Price:        floatPtr(70),
		}
	}

	tests := []struct {
		name     string
		mutate   func(*CreateFacilityRequest)
		wantErr  bool
		errField string
	}{
		{name: "valid", mutate: func(r *CreateFacilityRequest) {}},
		{
			name:     "missing facility_name",
			mutate:   func(r *CreateFacilityRequest) { r.FacilityName = "" },
			wantErr:  true,
			errField: "facility_name",
		},
		{
			name:     "missing location",
			mutate:   func(r *CreateFacilityRequest) { r.Location = "" },
			wantErr:  true,
			errField: "location",
		},
		{
			name:     "missing image",
			mutate:   func(r *CreateFacilityRequest) { r.Image = "" },
			wantErr:  true,
			errField: "image",
		},
		{
			name:     "zero capacity",
			mutate:   func(r *CreateFacilityRequest) { r.Capacity = 0 },
			wantErr:  true,
			errField: "capacity",
		},
		{
			name:     "negative price",
			mutate:   func(r *CreateFacilityRequest) { r.Price = floatPtr(-1) },
			wantErr:  true,
			errField: "price",
		},
		{
			name:   "zero price is allowed",
			mutate: func(r *CreateFacilityRequest) { r.Price = floatPtr(0) },
		},
		{
			name:   "description optional",
			mutate: func(r *CreateFacilityRequest) { r.Description = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errField) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.errField)
			}
		})
	}
}

func TestCreateFacilityRequest_Record(t *testing.T) {
	req := CreateFacilityRequest{
		FacilityName: "SecureVault",
		Location:     "Durban",
		Type:         "Locker",
		Image:        "aW1hZ2U=",
		Capacity:     5,
		Price:        floatPtr(70),
	}
	rec := req.Record("f-1", "https://blobs/facilities/securevault-x.jpg")

	if _, ok := rec["image"]; ok {
		t.Error("Record() leaked the raw image payload into the record")
	}
	if rec["image_reference"] != "https://blobs/facilities/securevault-x.jpg" {
		t.Errorf("Record() image_reference = %v", rec["image_reference"])
	}
	if rec["description"] != "" {
		t.Errorf("Record() description = %v, want empty default", rec["description"])
	}
}

func TestCreateFacilityRequest_ImageKeySlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "SecureVault", want: "securevault"},
		{name: "The Locker Zone", want: "the-locker-zone"},
		{name: "Überstore!!", want: "berstore"},
		{name: "!!!", want: "facility"},
	}
	for _, tt := range tests {
		req := CreateFacilityRequest{FacilityName: tt.name}
		if got := req.ImageKeySlug(); got != tt.want {
			t.Errorf("ImageKeySlug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCreatePaymentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "canonical names",
			payload: `{"facility_id":"f-1","payment_amount":100,"payment_type":"credit_card"}`,
		},
		{
			name:    "alternate names",
			payload: `{"facility_id":"f-1","amount":100,"payment_method":"eft"}`,
		},
		{
			name:    "missing facility_id",
			payload: `{"payment_amount":100,"payment_type":"credit_card"}`,
			wantErr: "facility_id",
		},
		{
			name:    "missing amount",
			payload: `{"facility_id":"f-1","payment_type":"credit_card"}`,
			wantErr: "payment_amount",
		},
		{
			name:    "missing method",
			payload: `{"facility_id":"f-1","payment_amount":100}`,
			wantErr: "payment_type",
		},
		{
			name:    "negative amount",
			payload: `{"facility_id":"f-1","payment_amount":-5,"payment_type":"eft"}`,
			wantErr: "payment_amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreatePaymentRequest
			if err := json.Unmarshal([]byte(tt.payload), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreatePaymentRequest_Record(t *testing.T) {
	amount := 100.0
	req := CreatePaymentRequest{
		FacilityID:    "f-1",
		PaymentAmount: &amount,
		PaymentType:   "credit_card",
		BookingID:     "b-1",
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := req.Record("p-1", now)

	if rec["payment_status"] != "Pending" {
		t.Errorf("Record() status = %v, want Pending", rec["payment_status"])
	}
	if rec["created_at"] != "2024-06-01T12:00:00Z" {
		t.Errorf("Record() created_at = %v", rec["created_at"])
	}
	if rec["booking_id"] != "b-1" {
		t.Errorf("Record() booking_id = %v", rec["booking_id"])
	}
	if _, ok := rec["start_date"]; ok {
		t.Error("Record() included unset start_date")
	}
}

func TestUserPayload(t *testing.T) {
	p, err := ParseUserPayload([]byte(`{"email":"a@b.com","nickname":"al"}`))
	if err != nil {
		t.Fatalf("ParseUserPayload() error = %v", err)
	}
	if err := p.ValidateEmail(); err != nil {
		t.Errorf("ValidateEmail() error = %v", err)
	}
	if p.Password() != DefaultTempPassword {
		t.Errorf("Password() = %q, want default", p.Password())
	}

	rec := p.Stamp("u-1", "2024-06-01T12:00:00Z")
	if rec["userid"] != "u-1" || rec["timestamp"] != "2024-06-01T12:00:00Z" {
		t.Errorf("Stamp() rec = %v", rec)
	}
	if rec["nickname"] != "al" {
		t.Error("Stamp() dropped a caller-supplied attribute")
	}

	if _, err := ParseUserPayload([]byte(`not json`)); err == nil {
		t.Error("ParseUserPayload() accepted malformed JSON")
	}

	bad, _ := ParseUserPayload([]byte(`{"email":"nope"}`))
	if err := bad.ValidateEmail(); err == nil {
		t.Error("ValidateEmail() accepted a malformed address")
	}
	missing, _ := ParseUserPayload([]byte(`{}`))
	if err := missing.ValidateEmail(); err == nil {
		t.Error("ValidateEmail() accepted a missing email")
	}
}
