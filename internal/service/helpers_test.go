package service

import (
	"io"
	"sync"
	"testing"

	"rangerblock/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// newTestCryptoEngine keeps RSA-2048 but lowers PBKDF2 rounds so tests stay fast.
func newTestCryptoEngine() *CryptoEngine {
	return &CryptoEngine{iterations: 1000, keyBits: rsaKeyBits}
}

var (
	keyPairOnce sync.Once
	keyPairs    [2]*domain.KeyPair
	keyPairsErr error
)

func loadKeyPairs() {
	e := newTestCryptoEngine()
	for i := range keyPairs {
		kp, err := e.GenerateKeyPair()
		if err != nil {
			keyPairsErr = err
			return
		}
		keyPairs[i] = kp
	}
}

func testKeyPair(t *testing.T) *domain.KeyPair {
	t.Helper()
	keyPairOnce.Do(loadKeyPairs)
	require.NoError(t, keyPairsErr)
	return keyPairs[0]
}

func otherKeyPair(t *testing.T) *domain.KeyPair {
	t.Helper()
	keyPairOnce.Do(loadKeyPairs)
	require.NoError(t, keyPairsErr)
	return keyPairs[1]
}
