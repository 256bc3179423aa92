package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ===============================
// Gateway port
// ===============================

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Intent is a charge prepared at the processor: Reference addresses
// it, ClientSecret lets the client finish the charge.
type Intent struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret"`
}

// Gateway is the payment processor boundary. Amounts are always in
// minor currency units here.
type Gateway interface {
	CreateIntent(
		ctx context.Context,
		amountCents int64,
		description string,
	) (*Intent, error)

	Retrieve(
		ctx context.Context,
		reference string,
	) (Status, error)

	Refund(
		ctx context.Context,
		reference string,
	) error
}

// CashReference mints a local placeholder reference for payments
// collected in person, outside the gateway.
func CashReference() string {
	return "cash_" + uuid.NewString()
}

// IsCashReference distinguishes local placeholders from processor
// references.
func IsCashReference(ref string) bool {
	return strings.HasPrefix(ref, "cash_")
}
