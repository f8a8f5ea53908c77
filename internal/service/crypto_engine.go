package service

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"rangerblock/internal/core/domain"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation and cipher parameters.
const (
	pbkdf2Iterations = 100_000
	derivedKeyLen    = 32
	masterSaltLen    = 32
	gcmNonceLen      = 12
	gcmTagLen        = 16
	rsaKeyBits       = 2048
	hardwareHashLen  = 16
)

// ErrDecryptionFailed means wrong key, wrong hardware or corrupted data.
var ErrDecryptionFailed = errors.New("decryption failed")

// CryptoEngine implements ports.CryptoEngine with PBKDF2-SHA256, AES-256-GCM and RSA-2048.
type CryptoEngine struct {
	iterations int
	keyBits    int
}

// NewCryptoEngine creates a crypto engine with production parameters.
func NewCryptoEngine() *CryptoEngine {
	return &CryptoEngine{iterations: pbkdf2Iterations, keyBits: rsaKeyBits}
}

// GenerateMasterSalt returns 32 random bytes, generated once per installation.
func (e *CryptoEngine) GenerateMasterSalt() ([]byte, error) {
	salt := make([]byte, masterSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating master salt: %w", err)
	}
	return salt, nil
}

// DeriveKey runs PBKDF2-SHA256 over keySource|base64(salt).
// keySource is the hardware UUID, optionally followed by the master password
// and the VM entropy secret.
func (e *CryptoEngine) DeriveKey(keySource string, salt []byte) []byte {
	material := keySource + "|" + base64.StdEncoding.EncodeToString(salt)
	return pbkdf2.Key([]byte(material), salt, e.iterations, derivedKeyLen, sha256.New)
}

// Encrypt seals plaintext with AES-256-GCM under a fresh 96-bit nonce.
func (e *CryptoEngine) Encrypt(plaintext, key []byte) (*domain.EncryptedBlob, error) {
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcmNonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	sealed := aesGCM.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-gcmTagLen], sealed[len(sealed)-gcmTagLen:]

	return &domain.EncryptedBlob{
		Encrypted: base64.StdEncoding.EncodeToString(ciphertext),
		IV:        base64.StdEncoding.EncodeToString(nonce),
		AuthTag:   base64.StdEncoding.EncodeToString(tag),
	}, nil
}

// Decrypt opens a blob sealed by Encrypt. Any failure wraps ErrDecryptionFailed.
func (e *CryptoEngine) Decrypt(blob *domain.EncryptedBlob, key []byte) ([]byte, error) {
	if blob == nil {
		return nil, fmt.Errorf("%w: empty blob", ErrDecryptionFailed)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(blob.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding ciphertext: %v", ErrDecryptionFailed, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(blob.IV)
	if err != nil || len(nonce) != gcmNonceLen {
		return nil, fmt.Errorf("%w: bad iv", ErrDecryptionFailed)
	}
	tag, err := base64.StdEncoding.DecodeString(blob.AuthTag)
	if err != nil || len(tag) != gcmTagLen {
		return nil, fmt.Errorf("%w: bad auth tag", ErrDecryptionFailed)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aesGCM, nil
}

// GenerateKeyPair creates an RSA key pair. Public is PKIX PEM, private is PKCS8 PEM.
func (e *CryptoEngine) GenerateKeyPair() (*domain.KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, e.keyBits)
	if err != nil {
		return nil, fmt.Errorf("generating rsa key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshaling public key: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("marshaling private key: %w", err)
	}

	return &domain.KeyPair{
		PublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
	}, nil
}

// Sign returns a base64 RSA PKCS#1 v1.5 SHA-256 signature over data.
func (e *CryptoEngine) Sign(data []byte, privateKeyPEM string) (string, error) {
	priv, err := ParsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("signing: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks a signature produced by Sign. Malformed input verifies false.
func (e *CryptoEngine) Verify(data []byte, signature, publicKeyPEM string) bool {
	pub, err := ParsePublicKey(publicKeyPEM)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig) == nil
}

// HardwareHash is the first 16 hex characters of sha256(hardwareUUID).
func (e *CryptoEngine) HardwareHash(hardwareUUID string) string {
	sum := sha256.Sum256([]byte(hardwareUUID))
	return hex.EncodeToString(sum[:])[:hardwareHashLen]
}

// ParsePrivateKey decodes a PKCS#8 (or PKCS#1) RSA private key.
func ParsePrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, errors.New("private key: no PEM block")
	}
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key: not RSA")
		}
		return rsaKey, nil
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return key, nil
}

// ParsePublicKey decodes a PKIX RSA public key.
func ParsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("public key: no PEM block")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key: not RSA")
	}
	return rsaKey, nil
}
