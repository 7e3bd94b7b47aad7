package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storage-rental-api/internal/adapters/blob"
	"storage-rental-api/internal/models"
	"storage-rental-api/internal/stores"
	"storage-rental-api/pkg/lambda"
)

// FacilityHandler handles facility-related requests
type FacilityHandler struct {
	records stores.RecordStore
	blobs   blob.BlobStore
	logger  *logrus.Logger
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(records stores.RecordStore, blobs blob.BlobStore, logger *logrus.Logger) *FacilityHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &FacilityHandler{
		records: records,
		blobs:   blobs,
		logger:  logger,
	}
}

// HandleList returns every facility record (GET /facilities)
func (h *FacilityHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	facilities, err := h.records.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return lambda.Respond(http.StatusOK, facilities), nil
}

// HandleSearch filters facilities by location and/or type
// (GET /facilities/search). Absent parameters are not part of the
// filter, so no parameters at all behaves like a plain list.
func (h *FacilityHandler) HandleSearch(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	filters := make(map[string]any)
	if location := req.QueryParams["location"]; location != "" {
		filters["location"] = location
	}
	if facilityType := req.QueryParams["type"]; facilityType != "" {
		filters["type"] = facilityType
	}

	facilities, err := h.records.Filter(ctx, filters)
	if err != nil {
		return nil, err
	}
	return lambda.Respond(http.StatusOK, facilities), nil
}

// HandleCreate creates a facility (POST /facilities). The embedded
// base64 image is decoded and uploaded to the blob store; the record
// keeps only the returned reference.
func (h *FacilityHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var payload models.CreateFacilityRequest
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Invalid JSON body: " + err.Error(),
		}), nil
	}

	if err := payload.Validate(); err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{"error": err.Error()}), nil
	}

	imageData, err := base64.StdEncoding.DecodeString(payload.Image)
	if err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Invalid value for field 'image': not valid base64",
		}), nil
	}

	imageKey := fmt.Sprintf("facilities/%s-%s", payload.ImageKeySlug(), uuid.New().String())
	imageReference, err := h.blobs.Put(ctx, imageKey, imageData, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to upload facility image: %w", err)
	}

	facilityID := uuid.New().String()
	if err := h.records.Put(ctx, facilityID, payload.Record(facilityID, imageReference)); err != nil {
		return nil, err
	}

	h.logger.WithFields(logrus.Fields{
		"facility_id":   facilityID,
		"facility_name": payload.FacilityName,
		"location":      payload.Location,
		"type":          payload.Type,
	}).Info("Facility created")

	return lambda.Respond(http.StatusCreated, map[string]string{
		"message":     "Facility created successfully!",
		"facility_id": facilityID,
	}), nil
}

// HandleDelete removes a facility by id (DELETE /facilities/{facility_id})
func (h *FacilityHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	facilityID := req.PathParams["facility_id"]
	if facilityID == "" {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Missing path parameter: facility_id",
		}), nil
	}

	existed, err := h.records.Delete(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if !existed {
		return lambda.Respond(http.StatusNotFound, map[string]string{
			"message": "Facility not found",
		}), nil
	}

	h.logger.WithField("facility_id", facilityID).Info("Facility deleted")
	return lambda.Respond(http.StatusOK, map[string]string{
		"message": "Facility deleted successfully!",
	}), nil
}
