package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return New(Options{ServiceName: "test", Output: buf})
}

func TestWithPartnerIDTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	logg := newBufferLogger(&buf)

	ctx := logg.WithPartnerID(context.Background(), "7f9c1c2d-8a1b-4f6e-9d3a-1b2c3d4e5f60")
	logg.Info(ctx, "ledger computed")

	if !strings.Contains(buf.String(), `"partner_id":"7f9c1c2d-8a1b-4f6e-9d3a-1b2c3d4e5f60"`) {
		t.Fatalf("expected partner_id field in output, got %s", buf.String())
	}
}

func TestWithSiteIDTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	logg := newBufferLogger(&buf)

	ctx := logg.WithSiteID(context.Background(), "0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d")
	logg.Info(ctx, "site completed")

	if !strings.Contains(buf.String(), `"site_id":"0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d"`) {
		t.Fatalf("expected site_id field in output, got %s", buf.String())
	}
}

func TestNilLoggerWithFieldIsSafe(t *testing.T) {
	var logg *Logger
	ctx := context.Background()
	if got := logg.WithField(ctx, "key", "value"); got != ctx {
		t.Fatalf("expected unchanged context from nil logger")
	}
	if got := logg.WithFields(ctx, map[string]any{"key": "value"}); got != ctx {
		t.Fatalf("expected unchanged context from nil logger")
	}
}
