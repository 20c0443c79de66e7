package encview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLatin1(t *testing.T) {
	raw := []byte{0xE9} // é in ISO-8859-1
	got, err := Decode(raw, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "é", got)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded, err := Encode("café", "windows-1252")
	require.NoError(t, err)
	decoded, err := Decode(encoded, "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "café", decoded)
}

func TestLookupUnknownEncoding(t *testing.T) {
	_, err := Lookup("not-a-real-encoding")
	assert.Error(t, err, "expected Lookup to reject an unknown encoding name")
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	a, err := Lookup("Latin1")
	require.NoError(t, err)
	b, err := Lookup("latin1")
	require.NoError(t, err)
	assert.Equal(t, a, b, "expected Lookup to be case-insensitive")
}
