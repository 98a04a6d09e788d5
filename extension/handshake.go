package extension

import (
	"bytes"
	"sort"

	"github.com/gvsurenderreddy-rakoshare/btext/bencode"
)

// Extra preserves top-level handshake keys this codec does not interpret
// (port, version, yourip, reqq, ...), in the order they were first seen,
// so they round-trip byte-for-byte through decode/encode.
type Extra struct {
	dict *bencode.Dict
}

// NewExtra returns an empty Extra.
func NewExtra() *Extra { return &Extra{dict: bencode.NewDict()} }

// Set stores a raw bencode value under key.
func (x *Extra) Set(key string, v bencode.Value) { x.dict.Set([]byte(key), v) }

// Get returns the raw bencode value stored under key, if any.
func (x *Extra) Get(key string) (bencode.Value, bool) { return x.dict.Get(key) }

// Each iterates the extras in insertion order.
func (x *Extra) Each(fn func(key string, v bencode.Value) error) error {
	return x.dict.Each(func(k []byte, v bencode.Value) error { return fn(string(k), v) })
}

func decodeHandshake(payload []byte) (Message, error) {
	v, _, err := bencode.DecodeStrict(payload)
	if err != nil {
		strictErr := err
		v, _, err = bencode.DecodeLenient(payload)
		if err != nil {
			return nil, strictErr
		}
		logLenientDecode("handshake", 0, payload, strictErr)
	}
	dict, err := v.DictValue()
	if err != nil {
		return nil, err
	}

	h := &Handshake{ExtensionIDs: map[string]int{}, Extra: NewExtra()}

	if mVal, ok := dict.Get("m"); ok {
		mDict, err := mVal.DictValue()
		if err != nil {
			return nil, err
		}
		if err := mDict.Each(func(key []byte, v bencode.Value) error {
			n, err := v.Int()
			if err != nil {
				return err
			}
			if n < 0 || n > 255 {
				return invalidExtensionId(int(n))
			}
			h.ExtensionIDs[string(key)] = int(n)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	if sizeVal, ok := dict.Get("metadata_size"); ok {
		n, err := sizeVal.Int()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, &Error{Kind: KindInvalidMetadataSize, Value: n}
		}
		h.MetadataSize = &n
	}

	if err := dict.Each(func(key []byte, v bencode.Value) error {
		k := string(key)
		if k == "m" || k == "metadata_size" {
			return nil
		}
		h.Extra.Set(k, v.Clone())
		return nil
	}); err != nil {
		return nil, err
	}

	return h, nil
}

// EncodeHandshake produces the canonical bencoding of h: the "m" dictionary
// and the top level dictionary both have their keys sorted lexicographically.
func EncodeHandshake(h *Handshake) ([]byte, error) {
	top := bencode.NewDict()

	if len(h.ExtensionIDs) > 0 {
		names := make([]string, 0, len(h.ExtensionIDs))
		for name := range h.ExtensionIDs {
			names = append(names, name)
		}
		sort.Strings(names)

		mDict := bencode.NewDict()
		for _, name := range names {
			id := h.ExtensionIDs[name]
			if id < 0 || id > 255 {
				return nil, invalidExtensionId(id)
			}
			mDict.Set([]byte(name), bencode.Integer(int64(id)))
		}
		top.Set([]byte("m"), bencode.Dictionary(mDict))
	}

	if h.MetadataSize != nil {
		if *h.MetadataSize < 0 {
			return nil, &Error{Kind: KindInvalidMetadataSize, Value: *h.MetadataSize}
		}
		top.Set([]byte("metadata_size"), bencode.Integer(*h.MetadataSize))
	}

	if h.Extra != nil {
		if err := h.Extra.Each(func(key string, v bencode.Value) error {
			top.Set([]byte(key), v)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := bencode.EncodeTo(&buf, bencode.Dictionary(top)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
