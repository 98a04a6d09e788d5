package extension

import (
	"testing"

	"github.com/gvsurenderreddy-rakoshare/btext/bencode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHandshakeBasic(t *testing.T) {
	reg := NewRegistry(Enabled{Metadata: true, PeerExchange: true})
	msg, err := reg.Decode(0, []byte("d1:md11:ut_metadatai1eee"))
	require.NoError(t, err)
	h, ok := msg.(*Handshake)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"ut_metadata": 1}, h.ExtensionIDs)
	assert.Nil(t, h.MetadataSize)
}

func TestDecodeHandshakeWithNoMKeySucceedsEmpty(t *testing.T) {
	reg := NewRegistry(Enabled{})
	msg, err := reg.Decode(0, []byte("d7:version9:btext/1.0e"))
	require.NoError(t, err)
	h := msg.(*Handshake)
	assert.Empty(t, h.ExtensionIDs)
	v, ok := h.Extra.Get("version")
	require.True(t, ok)
	s, err := v.Utf8()
	require.NoError(t, err)
	assert.Equal(t, "btext/1.0", s)
}

func TestDecodeHandshakeRejectsOutOfRangeExtensionId(t *testing.T) {
	reg := NewRegistry(Enabled{})
	_, err := reg.Decode(0, []byte("d1:md11:ut_metadatai999eee"))
	require.Error(t, err)
	extErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindInvalidExtensionId, extErr.Kind)
}

func TestDecodeHandshakeRejectsNegativeMetadataSize(t *testing.T) {
	reg := NewRegistry(Enabled{})
	_, err := reg.Decode(0, []byte("d13:metadata_sizei-1ee"))
	require.Error(t, err)
	extErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindInvalidMetadataSize, extErr.Kind)
}

func TestHandshakeAlwaysEnabled(t *testing.T) {
	reg := NewRegistry(Enabled{Metadata: false, PeerExchange: false})
	_, err := reg.Decode(0, []byte("de"))
	require.NoError(t, err)
}

func TestEncodeHandshakeRoundTrip(t *testing.T) {
	size := int64(30000)
	h := &Handshake{
		ExtensionIDs: map[string]int{"ut_metadata": 1, "ut_pex": 2},
		MetadataSize: &size,
		Extra:        NewExtra(),
	}
	payload, err := EncodeHandshake(h)
	require.NoError(t, err)

	reg := NewRegistry(Enabled{})
	msg, err := reg.Decode(0, payload)
	require.NoError(t, err)
	got := msg.(*Handshake)
	assert.Equal(t, h.ExtensionIDs, got.ExtensionIDs)
	require.NotNil(t, got.MetadataSize)
	assert.Equal(t, size, *got.MetadataSize)
}

func TestEncodeHandshakeCanonicalKeyOrder(t *testing.T) {
	h := &Handshake{ExtensionIDs: map[string]int{"ut_pex": 2, "ut_metadata": 1}, Extra: NewExtra()}
	payload, err := EncodeHandshake(h)
	require.NoError(t, err)
	assert.Equal(t, "d1:md11:ut_metadatai1e6:ut_pexi2eee", string(payload))
}

func TestDecodeHandshakeLenientRecoversOutOfOrderKeys(t *testing.T) {
	buf := []byte("d13:metadata_sizei100e1:md0:i0eee")

	reg := NewRegistry(Enabled{})
	_, err := reg.Decode(0, buf)
	require.NoError(t, err, "decode falls back to lenient automatically")

	_, _, strictErr := bencode.DecodeStrict(buf)
	require.Error(t, strictErr, "a strict-only decoder rejects the out-of-order keys")
}
