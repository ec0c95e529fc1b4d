package storage

import (
	"bytes"
	"encoding/json"
)

// Codec turns records into bytes and back. The log stores whatever
// Marshal produces and never inspects it; record types stay opaque to
// the storage layer.
//
// Marshal must produce at least one byte. A zero length output is
// rejected by the page layer because an empty payload cannot be told
// apart from slot padding once the page is read back from disk.
type Codec[T any] interface {
	Marshal(rec T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// JSONCodec encodes records with encoding/json.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Marshal(rec T) ([]byte, error) {
	return json.Marshal(rec)
}

func (JSONCodec[T]) Unmarshal(data []byte) (T, error) {
	var rec T
	err := json.Unmarshal(data, &rec)
	return rec, err
}

// RawCodec stores byte slices as they are. Unmarshal copies the slot
// payload so callers can hold on to records across scan steps.
type RawCodec struct{}

func (RawCodec) Marshal(rec []byte) ([]byte, error) {
	return rec, nil
}

func (RawCodec) Unmarshal(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}
