// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// TimestampLayout is the fixed-width UTC layout used for timestampValue.
// Fixed width keeps encoded timestamps lexicographically sortable.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// Value kinds of the typed document encoding. Every encoded value is a JSON
// object with exactly one of these keys, e.g. {"stringValue":"hello"}.
const (
	NullValue      = "nullValue"
	BooleanValue   = "booleanValue"
	IntegerValue   = "integerValue"
	DoubleValue    = "doubleValue"
	StringValue    = "stringValue"
	TimestampValue = "timestampValue"
	BytesValue     = "bytesValue"
	ReferenceValue = "referenceValue"
	ArrayValue     = "arrayValue"
	MapValue       = "mapValue"
)

// EncodeFields converts fields into the typed document encoding.
func EncodeFields(fields Fields) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for name, v := range fields {
		encoded, err := EncodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = encoded
	}
	return out, nil
}

// EncodeValue converts a single Go value into the typed document encoding.
func EncodeValue(v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return map[string]any{NullValue: nil}, nil
	case bool:
		return map[string]any{BooleanValue: t}, nil
	case int:
		return map[string]any{IntegerValue: strconv.FormatInt(int64(t), 10)}, nil
	case int32:
		return map[string]any{IntegerValue: strconv.FormatInt(int64(t), 10)}, nil
	case int64:
		return map[string]any{IntegerValue: strconv.FormatInt(t, 10)}, nil
	case float32:
		return map[string]any{DoubleValue: float64(t)}, nil
	case float64:
		return map[string]any{DoubleValue: t}, nil
	case string:
		return map[string]any{StringValue: t}, nil
	case []byte:
		return map[string]any{BytesValue: base64.StdEncoding.EncodeToString(t)}, nil
	case time.Time:
		return map[string]any{TimestampValue: t.UTC().Format(TimestampLayout)}, nil
	case []string:
		values := make([]any, len(t))
		for i, s := range t {
			values[i] = s
		}
		return EncodeValue(values)
	case []any:
		values := make([]any, 0, len(t))
		for i, item := range t {
			encoded, err := EncodeValue(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			values = append(values, encoded)
		}
		if len(values) == 0 {
			return map[string]any{ArrayValue: map[string]any{}}, nil
		}
		return map[string]any{ArrayValue: map[string]any{"values": values}}, nil
	case Fields:
		return encodeMap(t)
	case map[string]any:
		return encodeMap(t)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func encodeMap(m map[string]any) (map[string]any, error) {
	fields, err := EncodeFields(m)
	if err != nil {
		return nil, err
	}
	return map[string]any{MapValue: map[string]any{"fields": fields}}, nil
}

// DecodeFields converts the typed document encoding back into Go values.
func DecodeFields(raw map[string]json.RawMessage) (Fields, error) {
	fields := make(Fields, len(raw))
	for name, encoded := range raw {
		v, err := DecodeValue(encoded)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = v
	}
	return fields, nil
}

// DecodeValue converts one encoded value back into a Go value.
func DecodeValue(raw json.RawMessage) (any, error) {
	var kinds map[string]json.RawMessage
	if err := json.Unmarshal(raw, &kinds); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	if len(kinds) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one value kind, got %d", ErrMalformedValue, len(kinds))
	}

	for kind, payload := range kinds {
		v, err := decodeKind(kind, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedValue, kind, err)
		}
		return v, nil
	}

	return nil, ErrMalformedValue
}

func decodeKind(kind string, payload json.RawMessage) (any, error) {
	switch kind {
	case NullValue:
		return nil, nil
	case BooleanValue:
		var b bool
		err := json.Unmarshal(payload, &b)
		return b, err
	case IntegerValue:
		// the wire format carries int64 as a string, numbers are tolerated
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			var n json.Number
			if err := json.Unmarshal(payload, &n); err != nil {
				return nil, err
			}
			s = n.String()
		}
		return strconv.ParseInt(s, 10, 64)
	case DoubleValue:
		var f float64
		err := json.Unmarshal(payload, &f)
		return f, err
	case StringValue, ReferenceValue:
		var s string
		err := json.Unmarshal(payload, &s)
		return s, err
	case BytesValue:
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return base64.StdEncoding.DecodeString(s)
	case TimestampValue:
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return time.Parse(time.RFC3339Nano, s)
	case ArrayValue:
		var arr struct {
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(payload, &arr); err != nil {
			return nil, err
		}
		values := make([]any, 0, len(arr.Values))
		for _, item := range arr.Values {
			v, err := DecodeValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	case MapValue:
		var m struct {
			Fields map[string]json.RawMessage `json:"fields"`
		}
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, err
		}
		fields, err := DecodeFields(m.Fields)
		if err != nil {
			return nil, err
		}
		return map[string]any(fields), nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}

// ValueKind returns the encoding kind a filter value will be compared as.
// It is used by stores that compare encoded values directly.
func ValueKind(v any) (string, error) {
	encoded, err := EncodeValue(v)
	if err != nil {
		return "", err
	}
	kinds := make([]string, 0, 1)
	for k := range encoded {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds[0], nil
}
