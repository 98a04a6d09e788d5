package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryUnknownExtensionId255(t *testing.T) {
	reg := NewRegistry(Enabled{Metadata: true, PeerExchange: true})
	_, err := reg.Decode(255, []byte("de"))
	require.Error(t, err)
	extErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindUnknownExtensionId, extErr.Kind)
	assert.Equal(t, 255, extErr.ID)
}

func TestRegistryEnableGateIgnoresBufferContent(t *testing.T) {
	reg := NewRegistry(Enabled{Metadata: false})
	_, err := reg.Decode(1, []byte("not even bencode"))
	require.Error(t, err)
	extErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindExpectExtensionEnabled, extErr.Kind)
}

func TestRegistryIsEnabledReflectsCurrentConfig(t *testing.T) {
	reg := NewRegistry(Enabled{Metadata: true, PeerExchange: false})
	assert.True(t, reg.IsEnabled(MetadataRequest{}))
	assert.False(t, reg.IsEnabled(&PeerExchange{}))
	assert.True(t, reg.IsEnabled(&Handshake{}))
}

func TestRegistrySetEnabledIsLiveForSubsequentDecodes(t *testing.T) {
	reg := NewRegistry(Enabled{PeerExchange: false})
	_, err := reg.Decode(2, []byte("de"))
	require.Error(t, err)

	reg.SetEnabled(Enabled{PeerExchange: true})
	_, err = reg.Decode(2, []byte("de"))
	require.NoError(t, err)
}

func TestRegistryNameAt(t *testing.T) {
	reg := NewRegistry(Enabled{})
	assert.Equal(t, "", reg.NameAt(0))
	assert.Equal(t, "ut_metadata", reg.NameAt(1))
	assert.Equal(t, "ut_pex", reg.NameAt(2))
	assert.Equal(t, "", reg.NameAt(99))
}
