package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storage-rental-api/internal/adapters/gateway"
	"storage-rental-api/internal/models"
	"storage-rental-api/internal/stores"
	"storage-rental-api/pkg/lambda"
)

// PaymentHandler handles payment-related requests. The gateway is
// optional: when nil, payments are persisted as Pending and confirmed
// out of band; when set, creation runs a synchronous confirmation step.
type PaymentHandler struct {
	payments   stores.RecordStore
	facilities stores.RecordStore
	gateway    gateway.Gateway
	logger     *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments, facilities stores.RecordStore, gw gateway.Gateway, logger *logrus.Logger) *PaymentHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &PaymentHandler{
		payments:   payments,
		facilities: facilities,
		gateway:    gw,
		logger:     logger,
	}
}

// HandleCreate creates a payment (POST /payments). The referenced
// facility must exist at creation time; nothing is written otherwise.
// The existence check and the write are separate store operations, so a
// concurrent facility delete can still slip between them.
func (h *PaymentHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var payload models.CreatePaymentRequest
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Invalid JSON body: " + err.Error(),
		}), nil
	}

	if err := payload.Validate(); err != nil {
		return lambda.Respond(http.StatusBadRequest, map[string]string{"error": err.Error()}), nil
	}

	if _, err := h.facilities.Get(ctx, payload.FacilityID); err != nil {
		if stores.IsNotFound(err) {
			return lambda.Respond(http.StatusBadRequest, map[string]string{
				"message": "Facility not found",
			}), nil
		}
		return nil, err
	}

	paymentID := uuid.New().String()
	if err := h.payments.Put(ctx, paymentID, payload.Record(paymentID, time.Now())); err != nil {
		return nil, err
	}

	h.logger.WithFields(logrus.Fields{
		"payment_id":  paymentID,
		"facility_id": payload.FacilityID,
	}).Info("Payment created")

	if h.gateway == nil {
		return lambda.Respond(http.StatusCreated, map[string]string{
			"message":    "Payment created successfully!",
			"payment_id": paymentID,
		}), nil
	}

	return h.confirmPayment(ctx, paymentID, &payload)
}

// confirmPayment runs the synchronous gateway confirmation after the
// pending record is written. A declined charge moves the record to
// Failed so no payment is left stranded in Pending.
func (h *PaymentHandler) confirmPayment(ctx context.Context, paymentID string, payload *models.CreatePaymentRequest) (*lambda.Response, error) {
	amount, _ := payload.AmountValue()
	method, _ := payload.MethodValue()

	transactionID, err := h.gateway.Charge(ctx, amount, method)
	if err != nil {
		if _, uerr := h.payments.UpdateFields(ctx, paymentID, map[string]any{
			"payment_status": string(models.PaymentStatusFailed),
		}); uerr != nil {
			h.logger.WithError(uerr).WithField("payment_id", paymentID).
				Warn("Failed to mark declined payment as Failed")
		}
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Payment failed: " + err.Error(),
		}), nil
	}

	if _, err := h.payments.UpdateFields(ctx, paymentID, map[string]any{
		"payment_status": string(models.PaymentStatusCompleted),
		"transaction_id": transactionID,
	}); err != nil {
		return nil, err
	}

	h.logger.WithFields(logrus.Fields{
		"payment_id":     paymentID,
		"transaction_id": transactionID,
	}).Info("Payment completed")

	return lambda.Respond(http.StatusOK, map[string]string{
		"message":        "Payment completed successfully!",
		"payment_id":     paymentID,
		"transaction_id": transactionID,
	}), nil
}

// HandleList returns payments, optionally restricted to one facility
// (GET /payments?facility_id=...)
func (h *PaymentHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var (
		payments []stores.Record
		err      error
	)
	if facilityID := req.QueryParams["facility_id"]; facilityID != "" {
		payments, err = h.payments.Query(ctx, "facility_id", facilityID)
	} else {
		payments, err = h.payments.Scan(ctx)
	}
	if err != nil {
		return nil, err
	}
	return lambda.Respond(http.StatusOK, payments), nil
}

// HandleCancel cancels a payment by id (DELETE /payments/{payment_id}).
// The transition is unconditional for any existing record; only a
// missing record is an error.
func (h *PaymentHandler) HandleCancel(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	paymentID := req.PathParams["payment_id"]
	if paymentID == "" {
		return lambda.Respond(http.StatusBadRequest, map[string]string{
			"error": "Missing path parameter: payment_id",
		}), nil
	}

	updated, err := h.payments.UpdateFields(ctx, paymentID, map[string]any{
		"payment_status": string(models.PaymentStatusCancelled),
	})
	if err != nil {
		if stores.IsNotFound(err) {
			return lambda.Respond(http.StatusNotFound, map[string]string{
				"message": "Payment not found",
			}), nil
		}
		return nil, err
	}

	h.logger.WithField("payment_id", paymentID).Info("Payment cancelled")
	return lambda.Respond(http.StatusOK, map[string]any{
		"message": "Payment cancelled successfully!",
		"payment": updated,
	}), nil
}
