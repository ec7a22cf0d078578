package cryptography

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDecodeBase64(t *testing.T, encoded string) []byte {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	return raw
}
