package models

import (
	"strings"

	"storage-rental-api/internal/stores"
)

// FacilityType enumerates the common facility kinds. The set is open:
// callers may supply any string and it is stored verbatim.
type FacilityType string

const (
	FacilityTypeLocker      FacilityType = "Locker"
	FacilityTypeGarage      FacilityType = "Garage"
	FacilityTypeStorageUnit FacilityType = "Storage Unit"
	FacilityTypeWarehouse   FacilityType = "Warehouse"
)

// CreateFacilityRequest is the POST /facilities payload. Image carries
// the base64-encoded picture; it is uploaded to the blob store and only
// the resulting URL ends up in the record.
type CreateFacilityRequest struct {
	FacilityName string   `json:"facility_name" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Type         string   `json:"type" validate:"required"`
	Image        string   `json:"image" validate:"required"`
	Capacity     int      `json:"capacity" validate:"required,gt=0"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Description  string   `json:"description"`
}

// Validate validates the request payload
func (r *CreateFacilityRequest) Validate() error {
	return ValidateStruct(r)
}

// Record builds the facility record persisted to the record store.
// The raw image payload is deliberately absent.
func (r *CreateFacilityRequest) Record(facilityID, imageReference string) stores.Record {
	return stores.Record{
		"facility_id":     facilityID,
		"facility_name":   r.FacilityName,
		"location":        r.Location,
		"type":            r.Type,
		"capacity":        r.Capacity,
		"price":           *r.Price,
		"description":     r.Description,
		"image_reference": imageReference,
	}
}

// ImageKeySlug derives the blob key fragment from the facility name:
// lowercased, spaces collapsed to hyphens, everything else dropped.
func (r *CreateFacilityRequest) ImageKeySlug() string {
	var b strings.Builder
	for _, c := range strings.ToLower(r.FacilityName) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ', c == '-', c == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "facility"
	}
	return slug
}
