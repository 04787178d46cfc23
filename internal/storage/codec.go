package storage

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Blobs are JSON compressed with zstd. JSON keeps the format inspectable
// and stable across versions; zstd keeps hundred-turn replay logs small.

var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

func encodeBlob(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode blob: %w", err)
	}
	return zstdEncoder.EncodeAll(raw, nil), nil
}

func decodeBlob(blob []byte, v interface{}) error {
	raw, err := zstdDecoder.DecodeAll(blob, nil)
	if err != nil {
		return fmt.Errorf("decompress blob: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	return nil
}
