// Package msgpack provides MessagePack encoding for Flight tickets and
// query parameters.
package msgpack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a Go value into MessagePack form.
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("msgpack encode: %w", err)
	}
	return data, nil
}

// Decode deserializes MessagePack data into v, which must be a pointer.
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("msgpack decode: empty payload")
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("msgpack decode: %w", err)
	}
	return nil
}
