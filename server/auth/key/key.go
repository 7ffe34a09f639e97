package key

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"io/ioutil"

	"github.com/golang-jwt/jwt"
	"github.com/lestrrat-go/jwx/jwk"
)

type JWKS struct {
	Keys []interface{} `json:"keys"`
}

type KeyPair struct {
	Kid        string
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

// NewKeyPairFromRSAPrivateKeyPem parses a PEM encoded RSA private key.
// The key id is the base64url SHA-256 thumbprint of its public JWK.
func NewKeyPairFromRSAPrivateKeyPem(privateKeyPem []byte) (*KeyPair, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPem)
	if err != nil {
		return nil, fmt.Errorf("unable to parse RSA private key: %v", err)
	}

	return NewKeyPair(privateKey)
}

func NewKeyPairFromFile(filePath string) (*KeyPair, error) {
	privateKeyBytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return NewKeyPairFromRSAPrivateKeyPem(privateKeyBytes)
}

func NewKeyPair(privateKey *rsa.PrivateKey) (*KeyPair, error) {
	publicJWK, err := jwk.New(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("NewKeyPair: %v", err)
	}

	thumbprint, err := publicJWK.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("NewKeyPair: %v", err)
	}

	return &KeyPair{
		Kid:        base64.RawURLEncoding.EncodeToString(thumbprint),
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey}, nil
}

func (keyPair *KeyPair) JWK() (jwk.Key, error) {
	keyPairJWK, err := jwk.New(keyPair.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("JWK: %v", err)
	}

	for k, v := range map[string]interface{}{
		jwk.KeyIDKey:     keyPair.Kid,
		jwk.AlgorithmKey: "RS256",
		jwk.KeyUsageKey:  "sig",
	} {
		if err := keyPairJWK.Set(k, v); err != nil {
			return nil, fmt.Errorf("JWK: %v", err)
		}
	}

	return keyPairJWK, nil
}

func ExportJWKAsJWKS(jwk jwk.Key) JWKS {
	return JWKS{Keys: []interface{}{jwk}}
}

func PublicKeyFromJWK(key jwk.Key) (*rsa.PublicKey, error) {
	publicKey := &rsa.PublicKey{}

	err := key.Raw(publicKey)
	if err != nil {
		return nil, err
	}

	return publicKey, nil
}
