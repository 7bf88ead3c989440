package serialize

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/statline-lab/statline-go/registry"
)

func TestDatasetsListing(t *testing.T) {
	reg := registry.Default()
	data, err := Datasets(reg, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("Datasets failed: %v", err)
	}

	reader, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reading listing back failed: %v", err)
	}
	defer reader.Release()

	if !reader.Next() {
		t.Fatal("listing contains no record")
	}
	record := reader.RecordBatch()
	if int(record.NumRows()) != len(reg.IDs()) {
		t.Errorf("listing has %d rows, want %d", record.NumRows(), len(reg.IDs()))
	}
	if record.NumCols() != 6 {
		t.Errorf("listing has %d columns, want 6", record.NumCols())
	}
}

func TestCompressRoundTrip(t *testing.T) {
	reg := registry.Default()
	data, err := Datasets(reg, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("Datasets failed: %v", err)
	}

	compressed, err := CompressListing(data)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}

	d, err := NewDecompressor()
	if err != nil {
		t.Fatalf("NewDecompressor failed: %v", err)
	}
	defer d.Close()

	out, err := d.Decompress(compressed)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("round trip mismatch")
	}
}
