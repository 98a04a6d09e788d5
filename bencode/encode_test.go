package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeByteString(t *testing.T) {
	b, err := Encode(Str("spam"))
	require.NoError(t, err)
	assert.Equal(t, "4:spam", string(b))
}

func TestEncodeInteger(t *testing.T) {
	b, err := Encode(Integer(-42))
	require.NoError(t, err)
	assert.Equal(t, "i-42e", string(b))
}

func TestEncodeList(t *testing.T) {
	b, err := Encode(List([]Value{Str("spam"), Str("eggs")}))
	require.NoError(t, err)
	assert.Equal(t, "l4:spam4:eggse", string(b))
}

func TestEncodeDictSortsKeys(t *testing.T) {
	d := NewDict()
	d.Set([]byte("zebra"), Str("stripes"))
	d.Set([]byte("apple"), Str("pie"))
	b, err := Encode(Dictionary(d))
	require.NoError(t, err)
	assert.Equal(t, "d5:apple3:pie5:zebra7:stripese", string(b))
}

func TestEncodeIsAlwaysDecodableByStrictDecoder(t *testing.T) {
	d := NewDict()
	d.Set([]byte("m"), func() Value {
		inner := NewDict()
		inner.Set([]byte("ut_pex"), Integer(1))
		inner.Set([]byte("ut_metadata"), Integer(2))
		return Dictionary(inner)
	}())
	d.Set([]byte("metadata_size"), Integer(16384))
	d.Set([]byte("v"), Str("btext/1.0"))

	encoded, err := Encode(Dictionary(d))
	require.NoError(t, err)

	_, tail, err := DecodeStrict(encoded)
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestRoundTripPreservesStructure(t *testing.T) {
	original := NewDict()
	original.Set([]byte("added"), Str("\x7f\x00\x00\x01\x1a\xe1"))
	original.Set([]byte("added_f"), Str("\x00"))

	encoded, err := Encode(Dictionary(original))
	require.NoError(t, err)

	v, _, err := DecodeStrict(encoded)
	require.NoError(t, err)
	d, err := v.DictValue()
	require.NoError(t, err)

	added, err := d.Require("added")
	require.NoError(t, err)
	addedBytes, err := added.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "\x7f\x00\x00\x01\x1a\xe1", string(addedBytes))
}
