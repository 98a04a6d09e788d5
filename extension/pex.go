package extension

import (
	"bytes"
	"encoding/binary"

	"github.com/gvsurenderreddy-rakoshare/btext/bencode"
)

const (
	ipv4AddrLen = 4
	ipv6AddrLen = 16
)

// decodePeerExchange follows the same strict-then-lenient policy as the
// other codecs (spec.md §4.6), but "strict" here also covers the
// flag/address count mismatch that decodeFlags treats leniently: any
// failure in the strict pass, bencode syntax or field consistency,
// triggers the lenient retry. The endpoint-size divisor check has no
// lenient form (spec.md §4.5) and fails the same way on both passes.
func decodePeerExchange(payload []byte) (Message, error) {
	var strictErr error
	if v, _, err := bencode.DecodeStrict(payload); err != nil {
		strictErr = err
	} else if dict, err := v.DictValue(); err != nil {
		strictErr = err
	} else if pex, err := parsePex(dict, false); err != nil {
		strictErr = err
	} else {
		return pex, nil
	}

	v, _, err := bencode.DecodeLenient(payload)
	if err != nil {
		return nil, strictErr
	}
	dict, err := v.DictValue()
	if err != nil {
		return nil, strictErr
	}
	pex, err := parsePex(dict, true)
	if err != nil {
		return nil, strictErr
	}
	logLenientDecode("ut_pex", 2, payload, strictErr)
	return pex, nil
}

func parsePex(dict *bencode.Dict, lenient bool) (*PeerExchange, error) {
	pex := &PeerExchange{}
	var err error

	pex.Added, err = decodeCompactEndpoints(dict, "added", ipv4AddrLen)
	if err != nil {
		return nil, err
	}
	pex.AddedFlags, err = decodeFlags(dict, "added.f", len(pex.Added), lenient)
	if err != nil {
		return nil, err
	}

	pex.Added6, err = decodeCompactEndpoints(dict, "added6", ipv6AddrLen)
	if err != nil {
		return nil, err
	}
	pex.Added6Flags, err = decodeFlags(dict, "added6.f", len(pex.Added6), lenient)
	if err != nil {
		return nil, err
	}

	pex.Dropped, err = decodeCompactEndpoints(dict, "dropped", ipv4AddrLen)
	if err != nil {
		return nil, err
	}
	pex.Dropped6, err = decodeCompactEndpoints(dict, "dropped6", ipv6AddrLen)
	if err != nil {
		return nil, err
	}

	return pex, nil
}

// decodeCompactEndpoints reads a compact endpoint list. Its length must be a
// multiple of the endpoint size unconditionally (spec.md §4.5): unlike the
// flags fields, this check has no lenient carve-out.
func decodeCompactEndpoints(dict *bencode.Dict, key string, addrLen int) ([]Endpoint, error) {
	v, ok := dict.Get(key)
	if !ok {
		return nil, nil
	}
	raw, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	endpointSize := addrLen + 2
	if len(raw)%endpointSize != 0 {
		return nil, &Error{Kind: KindExpectPeerExchangeEndpointsSize, Field: key, Expect: endpointSize, Size: len(raw)}
	}
	n := len(raw) / endpointSize
	endpoints := make([]Endpoint, n)
	for i := 0; i < n; i++ {
		off := i * endpointSize
		ip := make([]byte, addrLen)
		copy(ip, raw[off:off+addrLen])
		port := binary.BigEndian.Uint16(raw[off+addrLen : off+endpointSize])
		endpoints[i] = Endpoint{IP: ip, Port: port}
	}
	return endpoints, nil
}

// decodeFlags reads the flags field for a compact endpoint list. Its length
// must equal count; in lenient mode a mismatch is repaired by truncating or
// zero-padding, in strict mode it fails InvalidPeerExchangeEndpoints.
func decodeFlags(dict *bencode.Dict, key string, count int, lenient bool) ([]byte, error) {
	v, ok := dict.Get(key)
	if !ok {
		return nil, nil
	}
	raw, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	if len(raw) == count {
		out := make([]byte, count)
		copy(out, raw)
		return out, nil
	}
	if !lenient {
		return nil, &Error{Kind: KindInvalidPeerExchangeEndpoints, Field: key}
	}
	out := make([]byte, count)
	copy(out, raw)
	return out, nil
}

// EncodePeerExchange produces the canonical bencoding of pex.
func EncodePeerExchange(pex *PeerExchange) ([]byte, error) {
	d := bencode.NewDict()

	if len(pex.Added) > 0 {
		d.Set([]byte("added"), bencode.String(encodeCompactEndpoints(pex.Added)))
	}
	if len(pex.AddedFlags) > 0 {
		d.Set([]byte("added.f"), bencode.String(pex.AddedFlags))
	}
	if len(pex.Added6) > 0 {
		d.Set([]byte("added6"), bencode.String(encodeCompactEndpoints(pex.Added6)))
	}
	if len(pex.Added6Flags) > 0 {
		d.Set([]byte("added6.f"), bencode.String(pex.Added6Flags))
	}
	if len(pex.Dropped) > 0 {
		d.Set([]byte("dropped"), bencode.String(encodeCompactEndpoints(pex.Dropped)))
	}
	if len(pex.Dropped6) > 0 {
		d.Set([]byte("dropped6"), bencode.String(encodeCompactEndpoints(pex.Dropped6)))
	}

	var buf bytes.Buffer
	if err := bencode.EncodeTo(&buf, bencode.Dictionary(d)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCompactEndpoints(endpoints []Endpoint) []byte {
	if len(endpoints) == 0 {
		return nil
	}
	addrLen := len(endpoints[0].IP)
	out := make([]byte, 0, len(endpoints)*(addrLen+2))
	for _, e := range endpoints {
		out = append(out, e.IP...)
		var portBuf [2]byte
		binary.BigEndian.PutUint16(portBuf[:], e.Port)
		out = append(out, portBuf[:]...)
	}
	return out
}
