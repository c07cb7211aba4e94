package integrity

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/goverify"
	"github.com/spf13/afero"
)

func TestSignatureCheckerVerifiesSignedFile(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/keys/pub.pem", pubPEM, 0o644))

	pluginData := []byte("totally-a-plugin-shared-object")
	require.NoError(t, afero.WriteFile(fs, "/plugins/libstrongswan-test.so", pluginData, 0o644))

	signer := &goverify.RSAPrivateKey{PrivateKey: priv}
	sig, err := signer.Sign(pluginData)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(sig)
	require.NoError(t, afero.WriteFile(fs, "/plugins/libstrongswan-test.so.sig", []byte(encoded), 0o644))

	checker, err := NewSignatureChecker(fs, "/keys/pub.pem")
	require.NoError(t, err)

	assert.True(t, checker.CheckFile("test", "/plugins/libstrongswan-test.so"), "expected signature to verify")
	assert.True(t, checker.CheckSegment("test", nil), "expected segment check to reuse the passing file check")
	assert.False(t, checker.CheckSegment("unknown-plugin", nil), "expected segment check for a plugin never file-checked to fail")
}

func TestSignatureCheckerRejectsTamperedFile(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/keys/pub.pem", pubPEM, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/plugins/evil.so", []byte("original"), 0o644))

	signer := &goverify.RSAPrivateKey{PrivateKey: priv}
	sig, err := signer.Sign([]byte("original"))
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/plugins/evil.so.sig", []byte(base64.StdEncoding.EncodeToString(sig)), 0o644))

	// tamper after signing
	require.NoError(t, afero.WriteFile(fs, "/plugins/evil.so", []byte("tampered!"), 0o644))

	checker, err := NewSignatureChecker(fs, "/keys/pub.pem")
	require.NoError(t, err)
	assert.False(t, checker.CheckFile("evil", "/plugins/evil.so"), "expected tampered file to fail signature verification")
}
