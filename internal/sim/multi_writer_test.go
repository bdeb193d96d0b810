package sim

import (
	"errors"
	"testing"

	"vitalsim/internal/vitals"
)

type failingWriter struct{}

func (failingWriter) Write(vitals.VitalsRow) error { return errors.New("sink down") }

func TestMultiWriter_FansOut(t *testing.T) {
	a := &MockWriter{}
	b := &MockWriter{}
	mw := NewMultiWriter(a, b)

	if err := mw.Write(testRow()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(a.Rows) != 1 || len(b.Rows) != 1 {
		t.Fatalf("expected both writers to receive the row: a=%d b=%d", len(a.Rows), len(b.Rows))
	}
}

func TestMultiWriter_ContinuesPastErrors(t *testing.T) {
	ok := &MockWriter{}
	mw := NewMultiWriter(failingWriter{}, ok)

	err := mw.Write(testRow())
	if err == nil {
		t.Fatalf("expected error from failing writer")
	}
	if len(ok.Rows) != 1 {
		t.Fatalf("healthy writer should still receive the row")
	}
}

func TestMultiWriter_BatchUsesBatchMode(t *testing.T) {
	bw := &mockBatchWriter{}
	plain := &MockWriter{}
	mw := NewMultiWriter(bw, plain)

	rows := []vitals.VitalsRow{testRow(), testRow()}
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("write batch: %v", err)
	}
	if bw.batches != 1 {
		t.Errorf("expected batch writer to get one batch, got %d", bw.batches)
	}
	if len(plain.Rows) != 2 {
		t.Errorf("expected plain writer to get 2 rows, got %d", len(plain.Rows))
	}
}
