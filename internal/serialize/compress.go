package serialize

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressor is a reusable ZStandard compressor. EncodeAll is safe for
// concurrent use, so one Compressor serves the whole server.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a compressor at SpeedDefault. Callers must Close
// it to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data, returning a fresh buffer.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor is the reusable counterpart for clients and tests.
type Decompressor struct {
	decoder *zstd.Decoder
}

func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}
	out, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}

// CompressListing is the one-shot helper used by ListFlights.
func CompressListing(data []byte) ([]byte, error) {
	c, err := NewCompressor()
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Compress(data)
}
