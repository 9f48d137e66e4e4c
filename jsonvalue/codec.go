package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrTrailingData is returned when a parsed document has content after its
// single top-level value.
var ErrTrailingData = errors.New("jsonvalue: trailing data after JSON value")

// Parse decodes a single JSON document (object, array, or primitive) into
// a Value, preserving object key order and the original numeric literal.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}

	if dec.More() {
		return Value{}, ErrTrailingData
	}

	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return Value{}, fmt.Errorf("jsonvalue: unexpected delimiter %q", t)
		}
	case nil:
		return Null(), nil
	case bool:
		return Boolean(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	default:
		return Value{}, fmt.Errorf("jsonvalue: unexpected token %T", tok)
	}
}

func parseObject(dec *json.Decoder) (Value, error) {
	obj := NewObject(4)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsonvalue: non-string object key %v", keyTok)
		}

		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}

		obj.Set(key, val)
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return ObjectValue(obj), nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	var arr []Value

	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}

		arr = append(arr, val)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return Array(arr), nil
}

// Print serializes v to JSON text. When pretty is true the output is
// indented with two spaces, matching the CLI's --pretty flag (spec.md §6).
func Print(v Value, pretty bool) (string, error) {
	var buf bytes.Buffer

	if err := appendValue(&buf, v); err != nil {
		return "", err
	}

	if !pretty {
		return buf.String(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", err
	}

	return out.String(), nil
}

func appendValue(buf *bytes.Buffer, v Value) error {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		buf.WriteString(string(v.Num))
	case KindString:
		return appendString(buf, v.Str)
	case KindArray:
		return appendArray(buf, v.Arr)
	case KindObject:
		return appendObject(buf, v.Obj)
	default:
		return fmt.Errorf("jsonvalue: unknown kind %d", v.Kind)
	}

	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	buf.Write(b)

	return nil
}

func appendArray(buf *bytes.Buffer, arr []Value) error {
	buf.WriteByte('[')

	for i, v := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := appendValue(buf, v); err != nil {
			return err
		}
	}

	buf.WriteByte(']')

	return nil
}

func appendObject(buf *bytes.Buffer, obj *Object) error {
	buf.WriteByte('{')

	for i, p := range obj.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := appendString(buf, p.Key); err != nil {
			return err
		}

		buf.WriteByte(':')

		if err := appendValue(buf, p.Value); err != nil {
			return err
		}
	}

	buf.WriteByte('}')

	return nil
}
