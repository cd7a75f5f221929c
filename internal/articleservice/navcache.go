package articleservice

import (
	"bytes"
	"compress/zlib"
	"encoding/gob"
	"io"
)

// Cache entries are stored as opaque compressed blobs rather than live
// slices, so a cached entry is replaced wholesale and readers can never
// observe a partial write.

func encodeBlob(v any) ([]byte, error) {
	var buf bytes.Buffer

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}

	if err := gob.NewEncoder(zw).Encode(v); err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decodeBlob(data []byte, dst any) error {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer zr.Close()

	if err := gob.NewDecoder(zr).Decode(dst); err != nil && err != io.EOF {
		return err
	}

	return nil
}
