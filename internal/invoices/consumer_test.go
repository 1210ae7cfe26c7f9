package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	pubsub "cloud.google.com/go/pubsub/v2"
	"gorm.io/gorm"

	"github.com/hanbit-enc/siteops-backend/pkg/db/models"
	"github.com/hanbit-enc/siteops-backend/pkg/enums"
	pkgerrors "github.com/hanbit-enc/siteops-backend/pkg/errors"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubCreator struct {
	inputs []CreateInvoiceInput
	err    error
}

func (s *stubCreator) Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceDTO, error) {
	s.inputs = append(s.inputs, input)
	if s.err != nil {
		return nil, s.err
	}
	return &InvoiceDTO{}, nil
}

func newTestConsumer(t *testing.T, creator invoiceCreator, repo Repository) *Consumer {
	t.Helper()
	return &Consumer{
		svc:  creator,
		repo: repo,
		logg: logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	}
}

func buildFeedMessage(t *testing.T, doc feedDocument) *pubsub.Message {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal feed document: %v", err)
	}
	return &pubsub.Message{ID: "msg-1", Data: data}
}

func TestProcessIngestsFeedDocument(t *testing.T) {
	creator := &stubCreator{}
	consumer := newTestConsumer(t, creator, &fakeRepository{})

	msg := buildFeedMessage(t, feedDocument{
		SourceDocID: "nts-2024-0001",
		IssueDate:   "2024-01-10",
		Direction:   "purchase",
		TotalAmount: 500_000,
		PartnerName: "한빛건설",
	})

	res := consumer.process(context.Background(), msg)
	if res.nack {
		t.Fatal("expected ack")
	}
	if len(creator.inputs) != 1 {
		t.Fatalf("expected one create call, got %d", len(creator.inputs))
	}
	input := creator.inputs[0]
	if input.SourceDocID == nil || *input.SourceDocID != "nts-2024-0001" {
		t.Fatalf("source doc id not carried: %+v", input)
	}
	if input.Status == nil || *input.Status != enums.InvoiceStatusReceived {
		t.Fatalf("purchase document should arrive received: %+v", input)
	}
}

func TestProcessSkipsAlreadyIngestedDocument(t *testing.T) {
	creator := &stubCreator{}
	repo := &fakeRepository{
		findBySourceDocFn: func(ctx context.Context, sourceDocID string) (*models.Invoice, error) {
			return &models.Invoice{}, nil
		},
	}
	consumer := newTestConsumer(t, creator, repo)

	msg := buildFeedMessage(t, feedDocument{
		SourceDocID: "nts-2024-0001",
		IssueDate:   "2024-01-10",
		Direction:   "sales",
		TotalAmount: 100,
		PartnerName: "한빛건설",
	})

	res := consumer.process(context.Background(), msg)
	if res.nack {
		t.Fatal("expected ack for duplicate")
	}
	if len(creator.inputs) != 0 {
		t.Fatal("duplicate document must not be created again")
	}
}

func TestProcessAcksPermanentlyBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{name: "invalid json", data: []byte("{not json")},
		{name: "missing source doc id", data: []byte(`{"issueDate":"2024-01-10","direction":"sales"}`)},
		{name: "unknown direction", data: []byte(`{"sourceDocId":"d1","issueDate":"2024-01-10","direction":"sideways","partnerName":"한빛건설"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creator := &stubCreator{}
			consumer := newTestConsumer(t, creator, &fakeRepository{})

			res := consumer.process(context.Background(), &pubsub.Message{ID: "msg-1", Data: tc.data})
			if res.nack {
				t.Fatal("permanently bad documents must be acked, not retried")
			}
			if len(creator.inputs) != 0 {
				t.Fatal("bad document must not reach the service")
			}
		})
	}
}

func TestProcessAcksValidationRejection(t *testing.T) {
	creator := &stubCreator{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid issue date")}
	consumer := newTestConsumer(t, creator, &fakeRepository{})

	msg := buildFeedMessage(t, feedDocument{
		SourceDocID: "nts-2024-0002",
		IssueDate:   "10/01/2024",
		Direction:   "sales",
		PartnerName: "한빛건설",
	})

	if res := consumer.process(context.Background(), msg); res.nack {
		t.Fatal("validation rejection must ack")
	}
}

func TestProcessNacksTransientFailures(t *testing.T) {
	t.Run("lookup failure", func(t *testing.T) {
		repo := &fakeRepository{
			findBySourceDocFn: func(ctx context.Context, sourceDocID string) (*models.Invoice, error) {
				return nil, errors.New("db down")
			},
		}
		consumer := newTestConsumer(t, &stubCreator{}, repo)

		msg := buildFeedMessage(t, feedDocument{
			SourceDocID: "nts-2024-0003",
			IssueDate:   "2024-01-10",
			Direction:   "sales",
			PartnerName: "한빛건설",
		})
		if res := consumer.process(context.Background(), msg); !res.nack {
			t.Fatal("lookup failure must nack for redelivery")
		}
	})

	t.Run("create failure", func(t *testing.T) {
		creator := &stubCreator{err: pkgerrors.Wrap(pkgerrors.CodeDependency, gorm.ErrInvalidDB, "create invoice")}
		consumer := newTestConsumer(t, creator, &fakeRepository{})

		msg := buildFeedMessage(t, feedDocument{
			SourceDocID: "nts-2024-0004",
			IssueDate:   "2024-01-10",
			Direction:   "sales",
			PartnerName: "한빛건설",
		})
		if res := consumer.process(context.Background(), msg); !res.nack {
			t.Fatal("create failure must nack for redelivery")
		}
	})
}
