package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrDeclined is returned when the gateway refuses a charge
var ErrDeclined = errors.New("payment declined")

// Gateway confirms a payment synchronously and returns a transaction id
type Gateway interface {
	Charge(ctx context.Context, amount float64, method string) (string, error)
}

// SimulatedGateway is a deterministic stand-in for a real payment
// gateway. A DeclineAbove threshold of 0 approves every charge; anything
// larger declines charges above the threshold, which gives tests and
// demos a predictable failure path.
type SimulatedGateway struct {
	declineAbove float64
	logger       *logrus.Logger
}

// NewSimulatedGateway creates a new SimulatedGateway
func NewSimulatedGateway(declineAbove float64, logger *logrus.Logger) *SimulatedGateway {
	if logger == nil {
		logger = logrus.New()
	}
	return &SimulatedGateway{declineAbove: declineAbove, logger: logger}
}

// Charge implements Gateway.Charge
func (g *SimulatedGateway) Charge(ctx context.Context, amount float64, method string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrDeclined)
	}
	if g.declineAbove > 0 && amount > g.declineAbove {
		g.logger.WithFields(logrus.Fields{
			"amount": amount,
			"method": method,
		}).Warn("Gateway declined charge")
		return "", fmt.Errorf("%w: amount %.2f exceeds approval limit", ErrDeclined, amount)
	}

	transactionID := "txn-" + uuid.New().String()
	g.logger.WithFields(logrus.Fields{
		"amount":         amount,
		"method":         method,
		"transaction_id": transactionID,
	}).Info("Gateway approved charge")
	return transactionID, nil
}
