// Package bencode implements a tagged-variant in-memory representation of
// bencoded values (BitTorrent's serialization format: byte strings,
// integers, lists and byte-string-keyed dictionaries) plus a strict and a
// lenient decoder and a canonical encoder.
//
// Values decoded from a buffer borrow slices of that buffer; call Clone to
// obtain a copy that does not alias the source.
package bencode

import (
	"strconv"
	"unicode/utf8"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	// KindZero is the zero value of ValueKind; a zero Value carries no data.
	KindZero ValueKind = iota
	KindString
	KindInteger
	KindList
	KindDictionary
)

// Value is a tagged union over the four bencode primitives.
type Value struct {
	kind ValueKind
	str  []byte
	num  int64
	list []Value
	dict *Dict
}

// String constructs a byte-string Value. The byte slice is not copied.
func String(b []byte) Value { return Value{kind: KindString, str: b} }

// Str constructs a byte-string Value from a Go string.
func Str(s string) Value { return Value{kind: KindString, str: []byte(s)} }

// Integer constructs an integer Value.
func Integer(n int64) Value { return Value{kind: KindInteger, num: n} }

// List constructs a list Value. The slice is not copied.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// Dictionary constructs a dictionary Value.
func Dictionary(d *Dict) Value { return Value{kind: KindDictionary, dict: d} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// Bytes returns the underlying byte string, or ExpectByteString if v is not
// a string.
func (v Value) Bytes() ([]byte, error) {
	if v.kind != KindString {
		return nil, expect(KindExpectByteString, v)
	}
	return v.str, nil
}

// Utf8 returns the underlying byte string decoded as UTF-8, or
// InvalidUtf8String if it is not valid UTF-8.
func (v Value) Utf8() (string, error) {
	b, err := v.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &Error{Kind: KindInvalidUtf8String, Str: string(b)}
	}
	return string(b), nil
}

// Int returns the underlying integer, or ExpectInteger if v is not an
// integer.
func (v Value) Int() (int64, error) {
	if v.kind != KindInteger {
		return 0, expect(KindExpectInteger, v)
	}
	return v.num, nil
}

// ListItems returns the underlying list, or ExpectList if v is not a list.
func (v Value) ListItems() ([]Value, error) {
	if v.kind != KindList {
		return nil, expect(KindExpectList, v)
	}
	return v.list, nil
}

// DictValue returns the underlying dictionary, or ExpectDictionary if v is
// not a dictionary.
func (v Value) DictValue() (*Dict, error) {
	if v.kind != KindDictionary {
		return nil, expect(KindExpectDictionary, v)
	}
	return v.dict, nil
}

// Clone returns a Value that owns its own backing storage, independent of
// whatever buffer v may currently borrow from. Integers and the zero Value
// are returned unchanged since they never borrow.
func (v Value) Clone() Value {
	switch v.kind {
	case KindString:
		c := make([]byte, len(v.str))
		copy(c, v.str)
		return Value{kind: KindString, str: c}
	case KindList:
		c := make([]Value, len(v.list))
		for i, item := range v.list {
			c[i] = item.Clone()
		}
		return Value{kind: KindList, list: c}
	case KindDictionary:
		return Value{kind: KindDictionary, dict: v.dict.Clone()}
	default:
		return v
	}
}

// String implements fmt.Stringer for use in error messages; it is not a
// bencode encoding.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return "bstring(" + string(v.str) + ")"
	case KindInteger:
		return "int(" + strconv.FormatInt(v.num, 10) + ")"
	case KindList:
		return "list"
	case KindDictionary:
		return "dict"
	default:
		return "<zero>"
	}
}
