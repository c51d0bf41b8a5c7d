package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

type fakeInserter struct {
	responses []error
	calls     []int
	index     int
}

func (f *fakeInserter) InsertProductionEvents(_ context.Context, rows []any) error {
	f.calls = append(f.calls, len(rows))
	var err error
	if f.index < len(f.responses) {
		err = f.responses[f.index]
	}
	f.index++
	return err
}

func newWriterWithFakeInserter(t *testing.T) (*Writer, *fakeInserter) {
	t.Helper()
	fake := &fakeInserter{}
	writer, err := NewWriter(fake, WriterConfig{
		RetryPolicy: RetryPolicy{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaximumBackoff: 2 * time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("construct writer: %v", err)
	}
	return writer, fake
}

func TestNewWriterValidation(t *testing.T) {
	if _, err := NewWriter(nil, WriterConfig{}); err == nil {
		t.Fatal("expected error when client missing")
	}
}

func TestEncodeJSON(t *testing.T) {
	raw := json.RawMessage(`{"foo":"bar"}`)
	nj := encodeJSON(raw)
	if !nj.Valid {
		t.Fatal("expected json to be marked valid")
	}
	if nj.JSONVal != string(raw) {
		t.Fatalf("expected raw json passed through, got %s", nj.JSONVal)
	}

	if encodeJSON(nil).Valid {
		t.Fatal("expected nil json to be invalid")
	}
}

func TestWriterRetriesOnTransientError(t *testing.T) {
	writer, fake := newWriterWithFakeInserter(t)
	fake.responses = []error{
		&googleapi.Error{Code: http.StatusServiceUnavailable},
		nil,
	}

	if err := writer.Insert(context.Background(), ProductionEventRow{EventID: "1"}); err != nil {
		t.Fatalf("unexpected error writing row: %v", err)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("expected two insert attempts, got %d", len(fake.calls))
	}
	if len(writer.buffer) != 0 {
		t.Fatal("expected buffer to be empty after success")
	}
}

func TestWriterDoesNotRetryPermanentError(t *testing.T) {
	writer, fake := newWriterWithFakeInserter(t)
	fake.responses = []error{errors.New("schema mismatch")}

	if err := writer.Insert(context.Background(), ProductionEventRow{EventID: "1"}); err == nil {
		t.Fatal("expected insert error")
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected a single insert attempt, got %d", len(fake.calls))
	}
}

func TestWriterBatching(t *testing.T) {
	writer, fake := newWriterWithFakeInserter(t)
	writer.batchSize = 2

	if err := writer.Insert(context.Background(), ProductionEventRow{EventID: "1"}); err != nil {
		t.Fatalf("unexpected error on first insert: %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no insert before batch full, got %d", len(fake.calls))
	}

	if err := writer.Insert(context.Background(), ProductionEventRow{EventID: "2"}); err != nil {
		t.Fatalf("unexpected error on second insert: %v", err)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected single insert after batch flush, got %d", len(fake.calls))
	}
	if fake.calls[0] != 2 {
		t.Fatalf("expected two rows inserted, got %d", fake.calls[0])
	}
}

func TestWriterFlush(t *testing.T) {
	writer, fake := newWriterWithFakeInserter(t)
	writer.batchSize = 10
	if err := writer.Insert(context.Background(), ProductionEventRow{EventID: "1"}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := writer.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %v", err)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected flush to insert once, got %d", len(fake.calls))
	}
}
