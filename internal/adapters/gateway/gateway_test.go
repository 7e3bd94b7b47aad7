package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSimulatedGateway_Charge(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		declineAbove float64
		amount       float64
		wantDeclined bool
	}{
		{name: "approves under threshold", declineAbove: 500, amount: 100},
		{name: "approves at threshold", declineAbove: 500, amount: 500},
		{name: "declines over threshold", declineAbove: 500, amount: 501, wantDeclined: true},
		{name: "zero threshold approves everything", declineAbove: 0, amount: 1e9},
		{name: "declines non-positive amount", declineAbove: 0, amount: 0, wantDeclined: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSimulatedGateway(tt.declineAbove, nil)
			txID, err := g.Charge(ctx, tt.amount, "credit_card")
			if tt.wantDeclined {
				if !errors.Is(err, ErrDeclined) {
					t.Errorf("Charge() error = %v, want ErrDeclined", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Charge() error = %v", err)
			}
			if !strings.HasPrefix(txID, "txn-") {
				t.Errorf("Charge() transaction id = %s, want txn- prefix", txID)
			}
		})
	}
}
