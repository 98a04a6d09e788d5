package extension

import (
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// Logger receives the debug-level lenient-decode trace required by
// spec.md §4.6. Overridable for tests or embedding applications; defaults
// to logrus's standard logger.
var Logger logrus.FieldLogger = logrus.StandardLogger()

// RecoveryHook, when non-nil, is invoked in addition to Logger every time a
// message only decodes under the lenient bencode parser. It exists so that
// an embedding application can persist the event (see package compat)
// without this package importing anything above it. Decode does not know
// the originating peer's address, so the hook only carries what the codec
// itself observed; callers that need peer attribution should close over it
// per-connection before assigning the hook.
var RecoveryHook func(extensionName string, localID byte, payload []byte, strictErr error)

// Decode is the outward decode interface (spec.md §4.7): the identifier
// map is not consulted here because localID is already in the local
// namespace (the peer echoed back the id we advertised for this
// extension in our own handshake). Errors that are already an extension
// *Error (unknown id, disabled extension, protocol-level field errors) are
// returned unchanged; any other error from the decoder, such as a bencode
// syntax or shape error, is wrapped as a Deserialize error.
func Decode(reg *Registry, localID byte, payload []byte) (Message, error) {
	msg, err := reg.Decode(localID, payload)
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, deserializeError(err)
	}
	return msg, nil
}

// Encode produces the wire payload for msg and the peer's numeric id for
// its extension, as translated by idmap. Attempting to encode a message
// whose extension is not locally enabled is a caller precondition
// violation; Encode does not re-check it (spec.md §4.7).
func Encode(idmap *IDMap, msg Message) (payload []byte, peerID byte, err error) {
	peerID, ok := idmap.Map(msg)
	if !ok {
		return nil, 0, &Error{Kind: KindUnknownExtensionId, ID: int(msg.id())}
	}

	switch m := msg.(type) {
	case *Handshake:
		payload, err = EncodeHandshake(m)
	case MetadataRequest:
		payload, err = EncodeMetadata(m)
	case MetadataData:
		payload, err = EncodeMetadata(m)
	case MetadataReject:
		payload, err = EncodeMetadata(m)
	case *PeerExchange:
		payload, err = EncodePeerExchange(m)
	default:
		return nil, 0, &Error{Kind: KindUnknownExtensionId, ID: int(msg.id())}
	}
	if err != nil {
		return nil, 0, err
	}
	return payload, peerID, nil
}

// logLenientDecode records, at debug level, that a buffer failed strict
// bencode decoding but was successfully recovered by the lenient parser.
// Operators use this to identify non-compliant peer implementations
// (spec.md §4.6). The peer's numeric id is not known at decode time (the
// identifier map is not consulted on decode, per spec.md §4.7), so only
// the local extension id is logged, together with the raw payload (hex)
// and the strict decode error.
func logLenientDecode(extensionName string, localID byte, payload []byte, strictErr error) {
	Logger.WithFields(logrus.Fields{
		"extension": extensionName,
		"local_id":  localID,
		"payload":   hex.EncodeToString(payload),
		"error":     strictErr,
	}).Debug("recovered message via lenient bencode decode")
	if RecoveryHook != nil {
		RecoveryHook(extensionName, localID, payload, strictErr)
	}
}
