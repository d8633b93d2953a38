package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single key/value pair of a Record.
type Field struct {
	Key   string
	Value interface{}
}

// Record is an ordered mapping from column name to value.
// Unlike map[string]interface{}, it keeps the insertion order of its keys,
// which is what CSV headers are derived from.
type Record []Field

// NewRecord builds a Record from alternating key/value arguments.
// A trailing key without a value is stored with a nil value.
func NewRecord(kv ...interface{}) Record {
	r := make(Record, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var value interface{}
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		r = r.Set(key, value)
	}
	return r
}

// Keys returns the record keys in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value stored under key.
func (r Record) Get(key string) (interface{}, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing key in place, or appends a new field.
func (r Record) Set(key string, value interface{}) Record {
	for i, f := range r {
		if f.Key == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Field{Key: key, Value: value})
}

// MarshalJSON encodes the record as a JSON object with keys in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := EncodeJSON(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := EncodeJSON(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", f.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
// Nested objects become Records as well.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeOrdered(dec)
	if err != nil {
		return err
	}

	switch rec := v.(type) {
	case Record:
		*r = rec
	case nil:
		*r = nil
	default:
		return fmt.Errorf("cannot unmarshal JSON %T into Record", v)
	}
	return nil
}

// EncodeJSON marshals v to compact JSON without escaping <, > and &.
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeOrdered reads the next JSON value from dec.
// Objects are returned as Record, arrays as []interface{} and numbers as json.Number.
func decodeOrdered(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		rec := Record{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			value, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			rec = rec.Set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		items := []interface{}{}
		for dec.More() {
			item, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
