package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	mrand "math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/apperror"

	"github.com/rs/zerolog"
)

// Files kept in the secure directory.
const (
	IdentityFile    = "secure_identity.enc"
	KeysFile        = "secure_keys.enc"
	AttestationFile = "hardware_attestation.json"
	MasterSaltFile  = ".master_salt"
	VMEntropyFile   = ".vm_entropy"
)

const vmEntropyLen = 32

// IdentityStoreConfig holds the store's tunables.
type IdentityStoreConfig struct {
	AppType        string
	MatchThreshold float64
}

// DefaultIdentityStoreConfig warns below a 70% hardware match.
func DefaultIdentityStoreConfig() IdentityStoreConfig {
	return IdentityStoreConfig{AppType: "rangerblock", MatchThreshold: 0.7}
}

// SecureIdentityStore implements ports.IdentityStore. Identity and keys are
// encrypted under a key derived from the hardware UUID, so copying the
// directory to another machine leaves them unreadable.
type SecureIdentityStore struct {
	blobs    ports.BlobStore
	hardware ports.HardwareService
	crypto   ports.CryptoEngine
	tokens   ports.TokenService
	audit    ports.SecurityAuditor
	cfg      IdentityStoreConfig
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	state    domain.StoreState
	key      []byte
	hwUUID   string
	hwHash   string
	vm       *domain.VMDetection
	entropy  []byte
	identity *domain.Identity
	keys     *domain.KeyPair
}

// NewSecureIdentityStore creates an uninitialized store.
func NewSecureIdentityStore(
	blobs ports.BlobStore,
	hardware ports.HardwareService,
	crypto ports.CryptoEngine,
	tokens ports.TokenService,
	audit ports.SecurityAuditor,
	cfg IdentityStoreConfig,
	log zerolog.Logger,
) *SecureIdentityStore {
	return &SecureIdentityStore{
		blobs:    blobs,
		hardware: hardware,
		crypto:   crypto,
		tokens:   tokens,
		audit:    audit,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		state:    domain.StoreUninitialized,
	}
}

// Init prepares the secure directory, derives the hardware key and loads any existing identity.
// A second call on an initialized store is a no-op.
func (s *SecureIdentityStore) Init(ctx context.Context, masterPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked(ctx, masterPassword)
}

func (s *SecureIdentityStore) initLocked(ctx context.Context, masterPassword string) error {
	if s.state == domain.StoreReady || s.state == domain.StoreDegraded {
		return nil
	}
	s.state = domain.StoreInitializing

	if err := s.bootstrap(ctx, masterPassword); err != nil {
		s.state = domain.StoreUninitialized
		s.key = nil
		s.log.Error().Err(err).Msg("identity store initialization failed")
		return err
	}
	return nil
}

func (s *SecureIdentityStore) bootstrap(ctx context.Context, masterPassword string) error {
	if err := s.blobs.Ensure(); err != nil {
		return apperror.ErrIdentityStorage(err)
	}

	hwUUID, err := s.hardware.HardwareUUID(ctx)
	if err != nil {
		return fmt.Errorf("reading hardware uuid: %w", err)
	}
	s.hwUUID = hwUUID
	s.hwHash = s.crypto.HardwareHash(hwUUID)

	s.vm = s.hardware.DetectVM(ctx)
	if s.vm.IsVM {
		s.log.Warn().
			Str("hypervisor", s.vm.Hypervisor).
			Int("confidence", s.vm.Confidence).
			Msg("running inside a virtual machine")
		s.audit.Record(ctx, domain.EventVMDetected, map[string]any{
			"hypervisor": s.vm.Hypervisor,
			"confidence": s.vm.Confidence,
			"vmUuid":     s.vm.VMUUID,
		})
	}

	salt, err := s.loadOrCreateSalt()
	if err != nil {
		return err
	}

	s.entropy = nil
	if s.vm.IsVM {
		if s.entropy, err = s.loadOrCreateEntropy(ctx); err != nil {
			return err
		}
	}

	keySource := hwUUID
	if masterPassword != "" {
		keySource += "|" + masterPassword
	}
	if s.entropy != nil {
		keySource += "|" + hex.EncodeToString(s.entropy)
	}
	s.key = s.crypto.DeriveKey(keySource, salt)

	return s.loadIdentity(ctx)
}

func (s *SecureIdentityStore) loadOrCreateSalt() ([]byte, error) {
	raw, err := s.blobs.Read(MasterSaltFile)
	if err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}
	if raw != nil {
		salt, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil || len(salt) == 0 {
			return nil, apperror.ErrIdentityStorage(fmt.Errorf("corrupt %s", MasterSaltFile))
		}
		return salt, nil
	}

	salt, err := s.crypto.GenerateMasterSalt()
	if err != nil {
		return nil, err
	}
	if err := s.blobs.Write(MasterSaltFile, []byte(hex.EncodeToString(salt))); err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}
	return salt, nil
}

func (s *SecureIdentityStore) loadOrCreateEntropy(ctx context.Context) ([]byte, error) {
	raw, err := s.blobs.Read(VMEntropyFile)
	if err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}
	if raw != nil {
		secret, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil || len(secret) == 0 {
			return nil, apperror.ErrIdentityStorage(fmt.Errorf("corrupt %s", VMEntropyFile))
		}
		return secret, nil
	}

	secret := make([]byte, vmEntropyLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating vm entropy: %w", err)
	}
	if err := s.blobs.Write(VMEntropyFile, []byte(hex.EncodeToString(secret))); err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}
	s.audit.Record(ctx, domain.EventVMEntropyCreated, map[string]any{"vmUuid": s.vm.VMUUID})
	return secret, nil
}

// loadIdentity decides between READY and DEGRADED.
func (s *SecureIdentityStore) loadIdentity(ctx context.Context) error {
	s.identity, s.keys = nil, nil

	if !s.blobs.Exists(IdentityFile) {
		s.state = domain.StoreReady
		return nil
	}

	att, _, err := s.readAttestation()
	if err != nil {
		s.log.Warn().Err(err).Msg("hardware attestation unreadable")
	}

	var identity domain.Identity
	var keys domain.KeyPair
	_, err = s.openLocked(IdentityFile, &identity)
	if err == nil {
		_, err = s.openLocked(KeysFile, &keys)
	}
	if err != nil {
		if !errors.Is(err, ErrDecryptionFailed) {
			return apperror.ErrIdentityStorage(err)
		}
		if s.isClone(att) {
			s.discardClone(ctx, att)
			s.state = domain.StoreReady
			return nil
		}
		s.log.Error().Msg("stored identity cannot be decrypted on this hardware")
		s.audit.Record(ctx, domain.EventIdentityUnavailable, map[string]any{
			"reason":       "decryption failed",
			"hardwareHash": s.hwHash,
		})
		s.state = domain.StoreDegraded
		return nil
	}

	if att != nil {
		score, err := s.hardware.VerifyFingerprint(ctx, att)
		if err != nil {
			return fmt.Errorf("verifying fingerprint: %w", err)
		}
		if score < s.cfg.MatchThreshold {
			s.log.Warn().Float64("match_score", score).Msg("hardware has changed since identity creation")
			s.audit.Record(ctx, domain.EventHardwareMismatch, map[string]any{"matchScore": score})
		}
	}

	if s.isClone(att) {
		s.discardClone(ctx, att)
		s.state = domain.StoreReady
		return nil
	}

	s.identity = &identity
	s.keys = &keys
	s.state = domain.StoreReady
	s.log.Info().Str("user_id", identity.UserID).Str("node_id", identity.NodeID).Msg("identity loaded")
	return nil
}

// isClone reports whether att was stamped by a VM holding a different entropy secret.
func (s *SecureIdentityStore) isClone(att *domain.HardwareAttestation) bool {
	if s.entropy == nil || att == nil || att.VMEntropyHash == "" {
		return false
	}
	return !strings.HasSuffix(att.VMEntropyHash, EntropyTag(s.entropy))
}

func (s *SecureIdentityStore) discardClone(ctx context.Context, att *domain.HardwareAttestation) {
	details := map[string]any{"reason": "VM entropy mismatch"}
	if att.VMFirstSeen != nil {
		details["originalCreated"] = att.VMFirstSeen.Format(time.RFC3339)
	}
	s.log.Error().Str("vm_uuid", s.vm.VMUUID).Msg("cloned virtual machine detected, discarding identity")
	s.audit.Record(ctx, domain.EventVMCloneDetected, details)
	s.identity, s.keys = nil, nil
}

func (s *SecureIdentityStore) readAttestation() (*domain.HardwareAttestation, []byte, error) {
	raw, err := s.blobs.Read(AttestationFile)
	if err != nil || raw == nil {
		return nil, nil, err
	}
	var att domain.HardwareAttestation
	if err := json.Unmarshal(raw, &att); err != nil {
		return nil, raw, fmt.Errorf("decoding attestation: %w", err)
	}
	return &att, raw, nil
}

// State returns the lifecycle state.
func (s *SecureIdentityStore) State() domain.StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// GetOrCreateIdentity returns the existing identity, recording a new session,
// or creates one. An uninitialized store is initialized without a master password.
func (s *SecureIdentityStore) GetOrCreateIdentity(ctx context.Context, username string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StoreUninitialized {
		if err := s.initLocked(ctx, ""); err != nil {
			return nil, err
		}
	}
	if s.state == domain.StoreDegraded {
		return nil, apperror.ErrIdentityUnavailable()
	}

	if s.identity != nil {
		s.identity.Touch(s.now().UTC())
		if err := s.sealLocked(IdentityFile, s.identity); err != nil {
			return nil, apperror.ErrIdentityStorage(err)
		}
		out := *s.identity
		return &out, nil
	}
	return s.createLocked(ctx, username)
}

// CreateSecureIdentity always creates a new identity, replacing any loaded one.
func (s *SecureIdentityStore) CreateSecureIdentity(ctx context.Context, username string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireState(); err != nil {
		return nil, err
	}
	return s.createLocked(ctx, username)
}

func (s *SecureIdentityStore) createLocked(ctx context.Context, username string) (*domain.Identity, error) {
	if username == "" {
		username = domain.GenerateUsername(mrand.IntN(1000), mrand.IntN(1000), mrand.IntN(100))
	}

	keys, err := s.crypto.GenerateKeyPair()
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	att, err := s.hardware.CreateAttestation(ctx, s.entropy)
	if err != nil {
		return nil, fmt.Errorf("creating attestation: %w", err)
	}
	attBytes, err := json.MarshalIndent(att, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding attestation: %w", err)
	}
	attSig, err := s.crypto.Sign(attBytes, keys.PrivateKey)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}

	sum := sha256.Sum256([]byte(s.hwUUID + "|" + keys.PublicKey))
	fingerprint := hex.EncodeToString(sum[:])
	now := s.now().UTC()

	identity := &domain.Identity{
		UserID:               "rbs_" + fingerprint[:16],
		NodeID:               "secure_" + domain.SanitizeUsername(username) + "_" + fingerprint[:8],
		SecureFingerprint:    fingerprint,
		Username:             username,
		DisplayName:          username,
		AppType:              s.cfg.AppType,
		PublicKey:            keys.PublicKey,
		AttestationSignature: attSig,
		Created:              now,
		LastSeen:             now,
		Stats:                domain.IdentityStats{SessionsCount: 1},
		Security: domain.SecurityPosture{
			HardwareAttested: true,
			KeyBound:         true,
			EncryptedStorage: true,
			IsVM:             s.vm.IsVM,
			VMHypervisor:     s.vm.Hypervisor,
			VMProtected:      s.vm.IsVM,
		},
	}

	// Identity goes last: its presence marks a complete set.
	if err := s.sealLocked(KeysFile, keys); err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}
	if err := s.blobs.Write(AttestationFile, attBytes); err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}
	if err := s.sealLocked(IdentityFile, identity); err != nil {
		return nil, apperror.ErrIdentityStorage(err)
	}

	s.identity = identity
	s.keys = keys

	s.log.Info().
		Str("user_id", identity.UserID).
		Str("node_id", identity.NodeID).
		Bool("is_vm", s.vm.IsVM).
		Msg("secure identity created")
	s.audit.Record(ctx, domain.EventIdentityCreated, map[string]any{
		"userId": identity.UserID,
		"nodeId": identity.NodeID,
		"isVM":   s.vm.IsVM,
	})

	out := *identity
	return &out, nil
}

// VerifyIdentityIntegrity scores the loaded identity out of 100.
func (s *SecureIdentityStore) VerifyIdentityIntegrity(ctx context.Context) (*domain.IntegrityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := &domain.IntegrityReport{Issues: []string{}, Checks: []string{}}
	if s.state == domain.StoreUninitialized {
		return nil, apperror.ErrIdentityNotInitialized()
	}
	if s.identity == nil {
		if s.state == domain.StoreDegraded {
			report.Issues = append(report.Issues, "Keys could not be decrypted (hardware mismatch?)")
		} else {
			report.Issues = append(report.Issues, "No identity found")
		}
		return report, nil
	}

	att, attBytes, err := s.readAttestation()
	if err != nil {
		s.log.Warn().Err(err).Msg("hardware attestation unreadable")
	}
	if att != nil {
		report.Score += 20
		report.Checks = append(report.Checks, "Hardware attestation present")
	} else {
		report.Issues = append(report.Issues, "No hardware attestation found")
	}

	match, err := s.hardware.VerifyFingerprint(ctx, att)
	if err != nil {
		return nil, fmt.Errorf("verifying fingerprint: %w", err)
	}
	report.MatchScore = match
	report.Score += int(math.Round(match * 40))
	if match < s.cfg.MatchThreshold {
		report.Issues = append(report.Issues, fmt.Sprintf("Hardware match only %d%%", int(math.Round(match*100))))
	} else {
		report.Checks = append(report.Checks, fmt.Sprintf("Hardware match %d%%", int(math.Round(match*100))))
	}

	if att != nil && s.crypto.Verify(attBytes, s.identity.AttestationSignature, s.identity.PublicKey) {
		report.Score += 20
		report.Checks = append(report.Checks, "Attestation signature valid")
	} else {
		report.Issues = append(report.Issues, "Attestation signature invalid")
	}

	probe := []byte("integrity-check-" + strconv.FormatInt(s.now().UnixMilli(), 10))
	sig, err := s.crypto.Sign(probe, s.keys.PrivateKey)
	if err == nil && s.crypto.Verify(probe, sig, s.identity.PublicKey) {
		report.Score += 20
		report.Checks = append(report.Checks, "Key pair consistent")
	} else {
		report.Issues = append(report.Issues, "Key pair mismatch")
	}

	report.Valid = report.Score >= 80 && len(report.Issues) == 0
	return report, nil
}

// Identity returns a copy of the loaded identity.
func (s *SecureIdentityStore) Identity() (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireIdentity(); err != nil {
		return nil, err
	}
	out := *s.identity
	return &out, nil
}

// PublicKey returns the identity's PEM public key.
func (s *SecureIdentityStore) PublicKey() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireIdentity(); err != nil {
		return "", err
	}
	return s.identity.PublicKey, nil
}

// HardwareHash returns the short hash of the hardware UUID, empty before Init.
func (s *SecureIdentityStore) HardwareHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hwHash
}

// IsVM reports the cached VM verdict.
func (s *SecureIdentityStore) IsVM() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vm != nil && s.vm.IsVM
}

// SignMessage signs msg with the identity key.
func (s *SecureIdentityStore) SignMessage(msg []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireIdentity(); err != nil {
		return "", err
	}
	sig, err := s.crypto.Sign(msg, s.keys.PrivateKey)
	if err != nil {
		return "", apperror.ErrEncryptionFailure(err)
	}
	s.identity.Stats.MessagesSent++
	if err := s.sealLocked(IdentityFile, s.identity); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist message counter")
	}
	return sig, nil
}

// VerifyMessage checks a signature against any public key.
func (s *SecureIdentityStore) VerifyMessage(msg []byte, signature, publicKeyPEM string) bool {
	return s.crypto.Verify(msg, signature, publicKeyPEM)
}

// CreateAuthPayload builds the payload a node presents to peers.
func (s *SecureIdentityStore) CreateAuthPayload() (*domain.AuthPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireIdentity(); err != nil {
		return nil, err
	}
	return &domain.AuthPayload{
		UserID:        s.identity.UserID,
		NodeID:        s.identity.NodeID,
		Username:      s.identity.Username,
		PublicKey:     s.identity.PublicKey,
		HardwareHash:  s.hwHash,
		SecurityLevel: domain.AuthSecurityLevel,
		AppType:       s.identity.AppType,
		Timestamp:     s.now().UnixMilli(),
	}, nil
}

// CreateSessionToken issues a token bound to this machine's hardware hash.
func (s *SecureIdentityStore) CreateSessionToken() (string, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireIdentity(); err != nil {
		return "", time.Time{}, err
	}
	claims := domain.SessionClaims{
		UserID:   s.identity.UserID,
		NodeID:   s.identity.NodeID,
		Username: s.identity.Username,
	}
	return s.tokens.Issue(claims, s.hwHash, s.keys.PrivateKey)
}

// VerifySessionToken verifies a token against this identity and hardware.
func (s *SecureIdentityStore) VerifySessionToken(token string) *domain.TokenVerification {
	s.mu.RLock()
	if s.identity == nil {
		s.mu.RUnlock()
		return &domain.TokenVerification{Reason: domain.TokenMalformed}
	}
	pub, hwHash := s.identity.PublicKey, s.hwHash
	s.mu.RUnlock()

	res := s.tokens.Verify(token, pub, hwHash)
	if !res.Valid && res.Reason != domain.TokenMalformed {
		s.audit.Record(context.Background(), domain.EventSessionTokenRejected, map[string]any{
			"reason": string(res.Reason),
		})
	}
	return res
}

// Seal encrypts v as JSON under the store key and writes it to name.
func (s *SecureIdentityStore) Seal(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireState(); err != nil {
		return err
	}
	if err := s.sealLocked(name, v); err != nil {
		return apperror.ErrIdentityStorage(err)
	}
	return nil
}

// Open decrypts name into v. It returns false when name does not exist.
func (s *SecureIdentityStore) Open(name string, v any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireState(); err != nil {
		return false, err
	}
	ok, err := s.openLocked(name, v)
	if errors.Is(err, ErrDecryptionFailed) {
		return false, apperror.ErrIdentityUnavailable()
	}
	if err != nil {
		return false, apperror.ErrIdentityStorage(err)
	}
	return ok, nil
}

func (s *SecureIdentityStore) sealLocked(name string, v any) error {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	blob, err := s.crypto.Encrypt(plaintext, s.key)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", name, err)
	}
	raw, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return s.blobs.Write(name, raw)
}

func (s *SecureIdentityStore) openLocked(name string, v any) (bool, error) {
	raw, err := s.blobs.Read(name)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	var blob domain.EncryptedBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return false, fmt.Errorf("%w: %s is not an encrypted blob", ErrDecryptionFailed, name)
	}
	plaintext, err := s.crypto.Decrypt(&blob, s.key)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}

func (s *SecureIdentityStore) requireState() error {
	switch s.state {
	case domain.StoreReady:
		return nil
	case domain.StoreDegraded:
		return apperror.ErrIdentityUnavailable()
	default:
		return apperror.ErrIdentityNotInitialized()
	}
}

func (s *SecureIdentityStore) requireIdentity() error {
	if err := s.requireState(); err != nil {
		return err
	}
	if s.identity == nil {
		return apperror.ErrIdentityUnavailable()
	}
	return nil
}
