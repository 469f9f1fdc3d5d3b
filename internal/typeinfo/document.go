package typeinfo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is an ordered key/value mapping built once per node while it is
// collected. Keys keep their first insertion position; writing an existing
// key replaces its value in place. Outside this package a Document is read-only.
type Document struct {
	keys   []string
	values map[string]any
}

func newDocument() *Document {
	return &Document{values: make(map[string]any)}
}

func (d *Document) set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// GetString returns the string stored under key, or "" when the key is
// absent or holds another type.
func (d *Document) GetString(key string) string {
	s, _ := d.values[key].(string)
	return s
}

// GetDocument returns the nested document stored under key.
func (d *Document) GetDocument(key string) (*Document, bool) {
	doc, ok := d.values[key].(*Document)
	return doc, ok
}

// GetArray returns the array stored under key.
func (d *Document) GetArray(key string) ([]any, bool) {
	arr, ok := d.values[key].([]any)
	return arr, ok
}

// Has reports whether key has been written.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// MarshalJSON writes the keys in insertion order. Angle brackets and
// ampersands are not escaped.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, d.values[key]); err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
