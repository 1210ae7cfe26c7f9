package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
)

type invoiceCreator interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceDTO, error)
}

// Consumer ingests documents from the external e-invoice feed into the
// invoice store. Each feed document carries a stable source id; the unique
// source_doc_id column makes redelivery harmless.
type Consumer struct {
	svc          invoiceCreator
	repo         Repository
	subscription *pubsub.Subscriber
	logg         *logger.Logger
}

// NewConsumer builds an e-invoice feed consumer.
func NewConsumer(svc Service, repo Repository, subscription *pubsub.Subscriber, logg *logger.Logger) (*Consumer, error) {
	if svc == nil {
		return nil, fmt.Errorf("invoice service required")
	}
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("invoice feed subscription required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		svc:          svc,
		repo:         repo,
		subscription: subscription,
		logg:         logg,
	}, nil
}

// Run processes feed documents until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

type feedDocument struct {
	SourceDocID string  `json:"sourceDocId"`
	IssueDate   string  `json:"issueDate"`
	Direction   string  `json:"direction"`
	TotalAmount int64   `json:"totalAmount"`
	PartnerName string  `json:"partnerName"`
	ItemLabel   *string `json:"itemLabel,omitempty"`
	Memo        *string `json:"memo,omitempty"`
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
	})

	var doc feedDocument
	if err := json.Unmarshal(msg.Data, &doc); err != nil {
		c.logg.Error(logCtx, "failed to decode feed document", err)
		return processResult{ack: true}
	}

	sourceDocID := strings.TrimSpace(doc.SourceDocID)
	if sourceDocID == "" {
		c.logg.Error(logCtx, "feed document missing source doc id", nil)
		return processResult{ack: true}
	}
	logCtx = c.logg.WithField(logCtx, "source_doc_id", sourceDocID)

	if _, err := c.repo.FindBySourceDocID(ctx, sourceDocID); err == nil {
		c.logg.Info(logCtx, "feed document already ingested")
		return processResult{ack: true}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.logg.Error(logCtx, "source doc lookup failed", err)
		return processResult{nack: true}
	}

	direction, err := enums.ParseInvoiceDirection(doc.Direction)
	if err != nil {
		c.logg.Error(logCtx, "feed document carries unknown direction", err)
		return processResult{ack: true}
	}

	status := feedStatus(direction)
	_, err = c.svc.Create(ctx, CreateInvoiceInput{
		IssueDate:   doc.IssueDate,
		Direction:   direction,
		Status:      &status,
		TotalAmount: doc.TotalAmount,
		PartnerName: doc.PartnerName,
		ItemLabel:   doc.ItemLabel,
		Memo:        doc.Memo,
		SourceDocID: &sourceDocID,
	})
	if err != nil {
		typed := pkgerrors.As(err)
		if typed != nil && typed.Code() == pkgerrors.CodeValidation {
			// Malformed documents never become valid on redelivery.
			c.logg.Error(logCtx, "feed document rejected", err)
			return processResult{ack: true}
		}
		c.logg.Error(logCtx, "feed document ingestion failed", err)
		return processResult{nack: true}
	}

	c.logg.Info(logCtx, "feed document ingested")
	return processResult{ack: true}
}

// feedStatus maps the feed direction onto the lifecycle status a document
// already settled at the tax authority arrives in.
func feedStatus(direction enums.InvoiceDirection) enums.InvoiceStatus {
	if direction == enums.InvoiceDirectionPurchase {
		return enums.InvoiceStatusReceived
	}
	return enums.InvoiceStatusIssued
}
