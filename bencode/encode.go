package bencode

import (
	"bytes"
	"sort"
	"strconv"
)

// Encode produces the canonical bencoding of v: dictionary keys are
// written in sorted (lexicographic, byte-wise) order. The output is always
// accepted by a strict decoder.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the canonical bencoding of v to buf.
func EncodeTo(buf *bytes.Buffer, v Value) error {
	return encodeValue(buf, v)
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindString:
		return encodeBytes(buf, v.str)
	case KindInteger:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(v.num, 10))
		buf.WriteByte('e')
		return nil
	case KindList:
		buf.WriteByte('l')
		for _, item := range v.list {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('e')
		return nil
	case KindDictionary:
		return encodeDict(buf, v.dict)
	default:
		return syntaxErrorf("cannot encode zero value")
	}
}

func encodeBytes(buf *bytes.Buffer, b []byte) error {
	buf.WriteString(strconv.Itoa(len(b)))
	buf.WriteByte(':')
	buf.Write(b)
	return nil
}

func encodeDict(buf *bytes.Buffer, d *Dict) error {
	buf.WriteByte('d')
	keys := d.Keys()
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	for _, k := range keys {
		v, _ := d.Get(string(k))
		if err := encodeBytes(buf, k); err != nil {
			return err
		}
		if err := encodeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('e')
	return nil
}
