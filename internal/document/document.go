package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/project-labs/project/internal/errdefs"
)

// ExcludeKey is the reserved top-level key holding the merge exclusion list.
// It is never written back to disk.
const ExcludeKey = "__templateMergeExcludeKeys"

// Extension is the file extension of mergeable documents.
const Extension = ".json"

// Supports reports whether path names a mergeable document (case-insensitive).
func Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Document is an ordered JSON object. Values are nil, bool, string,
// json.Number, []any, or nested *Document.
type Document struct {
	keys   []string
	values map[string]any
}

// New returns an empty document.
func New() *Document {
	return &Document{values: make(map[string]any)}
}

// Parse decodes a JSON object. The top level must be an object.
func Parse(data []byte) (*Document, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*Document)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be an object, got %s", errdefs.ErrParse, kindOf(v))
	}
	return d, nil
}

// Decode decodes any JSON value. Objects become *Document, arrays []any and
// numbers json.Number, so every value re-encodes exactly as written.
// Duplicate object keys and trailing data are parse errors.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty document", errdefs.ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrParse, err)
	}
	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after offset %d", errdefs.ErrParse, dec.InputOffset())
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		d := New()
		for dec.More() {
			tok, err := nextToken(dec)
			if err != nil {
				return nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("offset %d: object key must be a string", dec.InputOffset())
			}
			if d.Has(key) {
				return nil, fmt.Errorf("offset %d: duplicate key %q", dec.InputOffset(), key)
			}
			val, err := nextValue(dec)
			if err != nil {
				return nil, err
			}
			d.Set(key, val)
		}
		_, err := nextToken(dec)
		return d, err
	case '[':
		items := []any{}
		for dec.More() {
			val, err := nextValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		_, err := nextToken(dec)
		return items, err
	default:
		return nil, fmt.Errorf("offset %d: unexpected %q", dec.InputOffset(), delim)
	}
}

func nextValue(dec *json.Decoder) (any, error) {
	tok, err := nextToken(dec)
	if err != nil {
		return nil, err
	}
	return decodeValue(dec, tok)
}

// nextToken reads a token inside a value, where end of input is never clean.
func nextToken(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func kindOf(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len returns the number of keys.
func (d *Document) Len() int { return len(d.keys) }

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (d *Document) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Delete removes key if present.
func (d *Document) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy; nested values are shared.
func (d *Document) Clone() *Document {
	c := &Document{
		keys:   append([]string(nil), d.keys...),
		values: make(map[string]any, len(d.values)),
	}
	for k, v := range d.values {
		c.values[k] = v
	}
	return c
}

// ExcludeKeys returns the key names listed under ExcludeKey. A single string
// is accepted as a one-element list; non-string items are ignored.
func (d *Document) ExcludeKeys() []string {
	v, ok := d.values[ExcludeKey]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case string:
		return []string{list}
	case []any:
		keys := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				keys = append(keys, s)
			}
		}
		return keys
	default:
		return nil
	}
}

// MarshalJSON writes the object with its keys in document order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, d.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode renders the document as 2-space indented JSON with a trailing
// newline. The reserved ExcludeKey is dropped.
func (d *Document) Encode() ([]byte, error) {
	return EncodeValue(d)
}

// EncodeValue renders a decoded value the way Encode renders a document.
// A top-level *Document loses its ExcludeKey.
func EncodeValue(v any) ([]byte, error) {
	if d, ok := v.(*Document); ok && d.Has(ExcludeKey) {
		c := d.Clone()
		c.Delete(ExcludeKey)
		v = c
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
