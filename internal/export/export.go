package export

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mknight/jot/internal/note"
)

// Encode serializes notes to a URL-safe blob: JSON, DEFLATE, then unpadded
// url-safe base64.
func Encode(notes []note.Note) (string, error) {
	payload, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("marshal notes: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("init compressor: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return "", fmt.Errorf("compress notes: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("flush compressor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a blob produced by Encode. Any malformed input returns an
// error; callers treat that as "import nothing".
func Decode(blob string) ([]note.Note, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress blob: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("close decompressor: %w", err)
	}

	var notes []note.Note
	if err := json.Unmarshal(payload, &notes); err != nil {
		return nil, fmt.Errorf("unmarshal notes: %w", err)
	}
	return notes, nil
}
