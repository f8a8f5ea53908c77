package service

import (
	"errors"
	"fmt"
	"time"

	"rangerblock/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenType is the "typ" header of every session token.
const SessionTokenType = "RBS"

// sessionTokenClaims is the payload of a session token.
type sessionTokenClaims struct {
	UserID       string `json:"userId"`
	NodeID       string `json:"nodeId"`
	Username     string `json:"username"`
	HardwareHash string `json:"hardwareHash"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService with RS256 tokens bound to a hardware hash.
type JWTTokenService struct {
	expiry time.Duration
	now    func() time.Time
}

// NewJWTTokenService creates a token service. Tokens expire after expiry.
func NewJWTTokenService(expiry time.Duration) *JWTTokenService {
	return &JWTTokenService{expiry: expiry, now: time.Now}
}

// Issue signs a token carrying claims and the current hardware hash.
func (s *JWTTokenService) Issue(claims domain.SessionClaims, hardwareHash, privateKeyPEM string) (string, time.Time, error) {
	priv, err := ParsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, sessionTokenClaims{
		UserID:       claims.UserID,
		NodeID:       claims.NodeID,
		Username:     claims.Username,
		HardwareHash: hardwareHash,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	token.Header["typ"] = SessionTokenType

	tokenString, err := token.SignedString(priv)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify checks signature, then expiry, then hardware hash, and reports the first failure.
func (s *JWTTokenService) Verify(tokenString, publicKeyPEM, hardwareHash string) *domain.TokenVerification {
	pub, err := ParsePublicKey(publicKeyPEM)
	if err != nil {
		return &domain.TokenVerification{Reason: domain.TokenInvalidSignature}
	}

	claims := &sessionTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return pub, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return &domain.TokenVerification{Reason: tokenFailure(err)}
	}
	if typ, _ := token.Header["typ"].(string); typ != SessionTokenType {
		return &domain.TokenVerification{Reason: domain.TokenMalformed}
	}

	result := &domain.TokenVerification{
		Claims: domain.SessionClaims{
			UserID:   claims.UserID,
			NodeID:   claims.NodeID,
			Username: claims.Username,
		},
		HardwareHash: claims.HardwareHash,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt == nil {
		result.Reason = domain.TokenMalformed
		return result
	}
	result.ExpiresAt = claims.ExpiresAt.Unix()

	if s.now().After(claims.ExpiresAt.Time) {
		result.Reason = domain.TokenExpired
		return result
	}
	if claims.HardwareHash != hardwareHash {
		result.Reason = domain.TokenHardwareMismatch
		return result
	}

	result.Valid = true
	return result
}

func tokenFailure(err error) domain.TokenFailure {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.TokenInvalidSignature
	default:
		return domain.TokenMalformed
	}
}
