package extension

import (
	"bytes"

	"github.com/gvsurenderreddy-rakoshare/btext/bencode"
)

const (
	metadataMsgTypeRequest int64 = 0
	metadataMsgTypeData    int64 = 1
	metadataMsgTypeReject  int64 = 2
)

func decodeMetadata(payload []byte) (Message, error) {
	v, tail, err := bencode.DecodeStrict(payload)
	lenient := false
	if err != nil {
		strictErr := err
		v, tail, err = bencode.DecodeLenient(payload)
		if err != nil {
			return nil, strictErr
		}
		lenient = true
		logLenientDecode("ut_metadata", 1, payload, strictErr)
	}
	dict, err := v.DictValue()
	if err != nil {
		return nil, err
	}

	msgTypeVal, err := dict.Require("msg_type")
	if err != nil {
		return nil, err
	}
	msgType, err := msgTypeVal.Int()
	if err != nil {
		return nil, err
	}

	pieceVal, err := dict.Require("piece")
	if err != nil {
		return nil, err
	}
	piece, err := pieceVal.Int()
	if err != nil {
		return nil, err
	}
	if piece < 0 {
		return nil, &Error{Kind: KindInvalidMetadataPiece, Value: piece}
	}

	switch msgType {
	case metadataMsgTypeRequest:
		if len(tail) > 0 && !lenient {
			return nil, deserializeError(trailingBytesError())
		}
		return MetadataRequest{Piece: piece}, nil

	case metadataMsgTypeData:
		totalSizeVal, err := dict.Require("total_size")
		if err != nil {
			return nil, err
		}
		totalSize, err := totalSizeVal.Int()
		if err != nil {
			return nil, err
		}
		if totalSize < 0 {
			return nil, &Error{Kind: KindInvalidMetadataSize, Value: totalSize}
		}
		return MetadataData{Piece: piece, TotalSize: totalSize, Payload: tail}, nil

	case metadataMsgTypeReject:
		if len(tail) > 0 && !lenient {
			return nil, deserializeError(trailingBytesError())
		}
		return MetadataReject{Piece: piece}, nil

	default:
		return nil, &Error{Kind: KindUnknownMetadataMessageType, Value: msgType}
	}
}

func trailingBytesError() error {
	return &bencode.Error{Kind: bencode.KindSyntax, Msg: "unexpected trailing bytes after metadata header"}
}

// EncodeMetadata produces the canonical bencoding of msg, followed by the
// raw payload bytes when msg is a MetadataData.
func EncodeMetadata(msg Metadata) ([]byte, error) {
	d := bencode.NewDict()
	var payload []byte

	switch m := msg.(type) {
	case MetadataRequest:
		d.Set([]byte("msg_type"), bencode.Integer(metadataMsgTypeRequest))
		d.Set([]byte("piece"), bencode.Integer(m.Piece))
	case MetadataData:
		d.Set([]byte("msg_type"), bencode.Integer(metadataMsgTypeData))
		d.Set([]byte("piece"), bencode.Integer(m.Piece))
		d.Set([]byte("total_size"), bencode.Integer(m.TotalSize))
		payload = m.Payload
	case MetadataReject:
		d.Set([]byte("msg_type"), bencode.Integer(metadataMsgTypeReject))
		d.Set([]byte("piece"), bencode.Integer(m.Piece))
	default:
		return nil, &Error{Kind: KindUnknownMetadataMessageType}
	}

	var buf bytes.Buffer
	if err := bencode.EncodeTo(&buf, bencode.Dictionary(d)); err != nil {
		return nil, err
	}
	buf.Write(payload)
	return buf.Bytes(), nil
}
