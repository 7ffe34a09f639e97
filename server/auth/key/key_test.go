package key

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyPairFromRSAPrivateKeyPem(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	privateKeyPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	keyPair, err := NewKeyPairFromRSAPrivateKeyPem(privateKeyPem)
	assert.Nil(t, err)
	assert.NotEmpty(t, keyPair.Kid)
	assert.Equal(t, privateKey.PublicKey.N, keyPair.PublicKey.N)

	samePair, err := NewKeyPair(privateKey)
	assert.Nil(t, err)
	assert.Equal(t, keyPair.Kid, samePair.Kid, "The key id should be stable for the same key")

	_, err = NewKeyPairFromRSAPrivateKeyPem([]byte("not a pem"))
	assert.NotNil(t, err)
}

func TestJWK(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	keyPair, err := NewKeyPair(privateKey)
	assert.Nil(t, err)

	publicJWK, err := keyPair.JWK()
	assert.Nil(t, err)
	assert.Equal(t, keyPair.Kid, publicJWK.KeyID())

	publicKey, err := PublicKeyFromJWK(publicJWK)
	assert.Nil(t, err)
	assert.Equal(t, privateKey.PublicKey.N, publicKey.N)
	assert.Equal(t, privateKey.PublicKey.E, publicKey.E)

	jwks := ExportJWKAsJWKS(publicJWK)
	assert.Len(t, jwks.Keys, 1)
}
