package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotRecords is returned by Result.Records when the value is not a
	// sequence of records.
	ErrNotRecords = errors.New("result is not a sequence of records")

	// ErrNonUniformRecords is returned by Result.Records when a record does not
	// share the key set of the first record.
	ErrNonUniformRecords = errors.New("records do not share the same keys")
)

// Result is the value a report is generated from.
// The zero value is an absent result.
type Result struct {
	value   interface{}
	present bool
}

// NoResult returns an absent result. It serializes as JSON null.
func NoResult() Result {
	return Result{}
}

// ValueResult wraps an arbitrary JSON-serializable value.
func ValueResult(v interface{}) Result {
	return Result{value: v, present: true}
}

// RecordsResult wraps an ordered sequence of records.
func RecordsResult(records ...Record) Result {
	if records == nil {
		records = []Record{}
	}
	return Result{value: records, present: true}
}

// IsAbsent reports whether no value was provided.
func (r Result) IsAbsent() bool {
	return !r.present
}

// Value returns the wrapped value, nil for an absent result.
func (r Result) Value() interface{} {
	return r.value
}

// MarshalJSON encodes the wrapped value; an absent result encodes as null.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.present {
		return []byte("null"), nil
	}
	return EncodeJSON(r.value)
}

// Records interprets the result as a sequence of uniform records.
// Every record must carry exactly the keys of the first one, each key once;
// key order may differ between records. An empty sequence is valid.
//
// Accepted shapes are a slice or array whose items are Record values or maps
// keyed by string (map[string]interface{}, map[string]string, ...). Maps get
// sorted keys. Structs are not records.
func (r Result) Records() ([]Record, error) {
	if !r.present {
		return nil, ErrNotRecords
	}

	var records []Record
	switch v := r.value.(type) {
	case []Record:
		records = v
	case []map[string]interface{}:
		records = make([]Record, len(v))
		for i, m := range v {
			records[i] = recordFromMap(m)
		}
	default:
		rv := reflect.ValueOf(r.value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("%w: got %T", ErrNotRecords, r.value)
		}
		records = make([]Record, rv.Len())
		for i := range records {
			rec, ok := toRecord(rv.Index(i).Interface())
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %T", ErrNotRecords, i, rv.Index(i).Interface())
			}
			records[i] = rec
		}
	}

	if err := checkUniform(records); err != nil {
		return nil, err
	}
	return records, nil
}

// toRecord converts a single sequence item to a Record.
func toRecord(item interface{}) (Record, bool) {
	switch rec := item.(type) {
	case Record:
		return rec, true
	case map[string]interface{}:
		return recordFromMap(rec), true
	}

	rv := reflect.ValueOf(item)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return recordFromMap(m), true
}

// checkUniform verifies that all records have exactly the key set of the
// first record and that no record repeats a key.
func checkUniform(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	want, err := keySet(records[0], 0)
	if err != nil {
		return err
	}

	for i, rec := range records[1:] {
		got, err := keySet(rec, i+1)
		if err != nil {
			return err
		}
		for key := range got {
			if _, ok := want[key]; !ok {
				return fmt.Errorf("%w: record %d has unexpected key %q", ErrNonUniformRecords, i+1, key)
			}
		}
		if len(got) != len(want) {
			return fmt.Errorf("%w: record %d has %d keys, expected %d", ErrNonUniformRecords, i+1, len(got), len(want))
		}
	}
	return nil
}

// keySet returns the keys of rec, rejecting repeated keys.
func keySet(rec Record, index int) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(rec))
	for _, f := range rec {
		if _, dup := set[f.Key]; dup {
			return nil, fmt.Errorf("%w: record %d repeats key %q", ErrNonUniformRecords, index, f.Key)
		}
		set[f.Key] = struct{}{}
	}
	return set, nil
}

// recordFromMap converts a map to a Record. Map iteration order is random,
// so keys are sorted to keep the output deterministic.
func recordFromMap(m map[string]interface{}) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := make(Record, 0, len(keys))
	for _, k := range keys {
		rec = append(rec, Field{Key: k, Value: m[k]})
	}
	return rec
}

// ParseResult decodes a JSON document into a Result, keeping object key order.
// Empty or whitespace-only input yields an absent result.
func ParseResult(data []byte) (Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NoResult(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeOrdered(dec)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse JSON result: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Result{}, fmt.Errorf("failed to parse JSON result: unexpected trailing data")
	}

	return ValueResult(v), nil
}

// ParseYAMLResult decodes a YAML document into a Result, keeping mapping key order.
// An empty document yields an absent result.
func ParseYAMLResult(data []byte) (Result, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Result{}, fmt.Errorf("failed to parse YAML result: %w", err)
	}
	if doc.Kind == 0 {
		return NoResult(), nil
	}

	v, err := convertYAMLNode(&doc)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse YAML result: %w", err)
	}
	return ValueResult(v), nil
}

// convertYAMLNode turns a YAML node tree into Records, slices and scalars.
func convertYAMLNode(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convertYAMLNode(node.Content[0])
	case yaml.MappingNode:
		rec := make(Record, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := convertYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec = rec.Set(node.Content[i].Value, value)
		}
		return rec, nil
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := convertYAMLNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.AliasNode:
		return convertYAMLNode(node.Alias)
	case yaml.ScalarNode:
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}
