package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
)

// InvoiceSource lists tax invoice records for one counterparty. An empty
// slice means zero records; a failed fetch must surface as an error, never as
// an empty result.
type InvoiceSource interface {
	ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Invoice, error)
	ListByPartnerName(ctx context.Context, partnerName string) ([]models.Invoice, error)
}

// PaymentSource lists cash movement records for one counterparty, under the
// same empty-versus-error contract as InvoiceSource.
type PaymentSource interface {
	ListByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]models.Payment, error)
	ListByPartnerName(ctx context.Context, partnerName string) ([]models.Payment, error)
}
