package models

import (
	"fmt"
	"time"

	"storage-rental-api/internal/stores"
)

// PaymentStatus enumerates the payment lifecycle. Pending is the only
// initial state; Completed, Cancelled and Failed are terminal.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

// CreatePaymentRequest is the POST /payments payload. Clients have
// historically sent the amount as either "amount" or "payment_amount"
// and the method as either "payment_method" or "payment_type"; both
// spellings are accepted and stored under the canonical names.
type CreatePaymentRequest struct {
	FacilityID    string   `json:"facility_id" validate:"required"`
	Amount        *float64 `json:"amount"`
	PaymentAmount *float64 `json:"payment_amount"`
	PaymentMethod string   `json:"payment_method"`
	PaymentType   string   `json:"payment_type"`
	BookingID     string   `json:"booking_id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	UserID        string   `json:"user_id"`
}

// AmountValue returns the payment amount under either accepted name
func (r *CreatePaymentRequest) AmountValue() (float64, bool) {
	if r.PaymentAmount != nil {
		return *r.PaymentAmount, true
	}
	if r.Amount != nil {
		return *r.Amount, true
	}
	return 0, false
}

// MethodValue returns the payment method under either accepted name
func (r *CreatePaymentRequest) MethodValue() (string, bool) {
	if r.PaymentType != "" {
		return r.PaymentType, true
	}
	if r.PaymentMethod != "" {
		return r.PaymentMethod, true
	}
	return "", false
}

// Validate validates the request payload
func (r *CreatePaymentRequest) Validate() error {
	if err := ValidateStruct(r); err != nil {
		return err
	}
	amount, ok := r.AmountValue()
	if !ok {
		return fmt.Errorf("Missing required field: 'payment_amount'")
	}
	if amount < 0 {
		return fmt.Errorf("Invalid value for field 'payment_amount': must be at least 0")
	}
	if _, ok := r.MethodValue(); !ok {
		return fmt.Errorf("Missing required field: 'payment_type'")
	}
	return nil
}

// Record builds the pending payment record persisted to the record
// store. Optional interval/booking fields are included only when set.
func (r *CreatePaymentRequest) Record(paymentID string, now time.Time) stores.Record {
	amount, _ := r.AmountValue()
	method, _ := r.MethodValue()

	rec := stores.Record{
		"payment_id":     paymentID,
		"facility_id":    r.FacilityID,
		"payment_amount": amount,
		"payment_type":   method,
		"payment_status": string(PaymentStatusPending),
		"created_at":     now.Format(time.RFC3339),
	}
	if r.BookingID != "" {
		rec["booking_id"] = r.BookingID
	}
	if r.StartDate != "" {
		rec["start_date"] = r.StartDate
	}
	if r.EndDate != "" {
		rec["end_date"] = r.EndDate
	}
	if r.UserID != "" {
		rec["user_id"] = r.UserID
	}
	return rec
}
