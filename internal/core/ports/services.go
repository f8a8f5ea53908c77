package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"rangerblock/internal/core/domain"
)

// CryptoEngine owns every key and ciphertext the node touches.
type CryptoEngine interface {
	GenerateMasterSalt() ([]byte, error)
	// DeriveKey stretches keySource into a 256-bit key bound to salt.
	DeriveKey(keySource string, salt []byte) []byte
	Encrypt(plaintext, key []byte) (*domain.EncryptedBlob, error)
	// Decrypt fails with an error wrapping service.ErrDecryptionFailed on tag mismatch.
	Decrypt(blob *domain.EncryptedBlob, key []byte) ([]byte, error)
	GenerateKeyPair() (*domain.KeyPair, error)
	Sign(data []byte, privateKeyPEM string) (string, error)
	Verify(data []byte, signature, publicKeyPEM string) bool
	HardwareHash(hardwareUUID string) string
}

// TokenService issues and verifies hardware-bound session tokens.
type TokenService interface {
	Issue(claims domain.SessionClaims, hardwareHash, privateKeyPEM string) (string, time.Time, error)
	Verify(token, publicKeyPEM, hardwareHash string) *domain.TokenVerification
}

// HardwareService fingerprints the machine and assesses virtualization.
type HardwareService interface {
	HardwareUUID(ctx context.Context) (string, error)
	HostInfo(ctx context.Context) domain.HostInfo
	DetectVM(ctx context.Context) *domain.VMDetection
	// CreateAttestation embeds an entropy tag derived from entropySecret when running in a VM.
	CreateAttestation(ctx context.Context, entropySecret []byte) (*domain.HardwareAttestation, error)
	// VerifyFingerprint scores the current machine against stored, 0.0 to 1.0.
	VerifyFingerprint(ctx context.Context, stored *domain.HardwareAttestation) (float64, error)
}

// SystemProbe reads raw platform facts. Adapters decide where they come from.
type SystemProbe interface {
	ReadFile(path string) ([]byte, error)
	NetworkMACs() ([]string, error)
	RunCommand(ctx context.Context, name string, args ...string) (string, error)
	ProcessNames() ([]string, error)
	HostInfo() domain.HostInfo
}

// IdentityStore is the only component allowed to touch the encrypted identity and key files.
type IdentityStore interface {
	Init(ctx context.Context, masterPassword string) error
	State() domain.StoreState
	GetOrCreateIdentity(ctx context.Context, username string) (*domain.Identity, error)
	CreateSecureIdentity(ctx context.Context, username string) (*domain.Identity, error)
	VerifyIdentityIntegrity(ctx context.Context) (*domain.IntegrityReport, error)
	Identity() (*domain.Identity, error)
	PublicKey() (string, error)
	HardwareHash() string
	IsVM() bool
	SignMessage(msg []byte) (string, error)
	VerifyMessage(msg []byte, signature, publicKeyPEM string) bool
	CreateAuthPayload() (*domain.AuthPayload, error)
	CreateSessionToken() (string, time.Time, error)
	VerifySessionToken(token string) *domain.TokenVerification
	// Seal encrypts v with the hardware-bound key and writes it under name.
	Seal(name string, v any) error
	// Open reads and decrypts name into v. It returns false when the file
	// is missing or cannot be decrypted on this machine.
	Open(name string, v any) (bool, error)
}

// WalletService builds signed transactions and mirrors balances locally.
type WalletService interface {
	Init(ctx context.Context) error
	Address() string
	PublicKey() (string, error)
	CreateTransfer(ctx context.Context, to string, amount float64, coin, memo string) (*domain.Transaction, error)
	VerifyTransaction(tx *domain.Transaction, senderPublicKey string) *domain.ValidationResult
	IsNonceUsed(ctx context.Context, address string, nonce uint64) (bool, error)
	IsDoubleSpend(ctx context.Context, tx *domain.Transaction) (bool, error)
	// MarkConfirmed drops a transaction id from the wallet's pending set.
	MarkConfirmed(txID string)
	// AdvanceNonce moves the nonce counter up to at least floor.
	AdvanceNonce(ctx context.Context, floor uint64) error
	Balance(coin string) float64
	Balances() map[string]float64
	UpdateBalance(coin string, amount float64) error
	SyncBalances(balances map[string]float64) error
	RateLimitStatus(ctx context.Context) (domain.RateLimitStatus, error)
	Summary(ctx context.Context) (*domain.WalletSummary, error)
}

// LedgerBridge admits wallet transactions into the ledger and replays blocks into balances.
type LedgerBridge interface {
	Init(ctx context.Context) error
	SendTokens(ctx context.Context, to string, amount float64, coin, memo string) (*domain.TransferReceipt, error)
	ValidateTransaction(ctx context.Context, tx *domain.Transaction) *domain.ValidationResult
	RegisterPublicKey(address, publicKeyPEM string)
	MineBlock(ctx context.Context) (*domain.Block, error)
	Sync(ctx context.Context) error
	Balance(address, coin string) float64
	Balances(address string) map[string]float64
	// Supply sums coin over every address seen, system addresses included.
	Supply(coin string) float64
	History(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	LedgerStatus(ctx context.Context) (*domain.LedgerStatus, error)
}

// Ledger is the external block-producing collaborator.
type Ledger interface {
	// AddPending queues txs together: either all of them are added or none.
	AddPending(ctx context.Context, txs ...domain.LedgerTransaction) error
	Pending(ctx context.Context) ([]domain.LedgerTransaction, error)
	Chain(ctx context.Context) ([]domain.Block, error)
	// MineBlock returns nil, nil when nothing is pending.
	MineBlock(ctx context.Context, validatorID string) (*domain.Block, error)
	Status(ctx context.Context) (*domain.LedgerStatus, error)
	// CheckAutoMine mines when the pending pool is full and returns the block, if any.
	CheckAutoMine(ctx context.Context, validatorID string) (*domain.Block, error)
}

// SecurityAuditor records security findings. It never fails the caller.
type SecurityAuditor interface {
	Record(ctx context.Context, t domain.SecurityEventType, details map[string]any)
}

// FileTransferService seals files into containers and runs transfer contracts.
type FileTransferService interface {
	Package(ctx context.Context, inputPath, outputDir string) (*domain.PackageInfo, error)
	Extract(ctx context.Context, packagePath, outputDir string) (*domain.ExtractResult, error)
	CreateContract(ctx context.Context, filePath, receiverID string) (*domain.TransferContract, error)
	AcceptContract(ctx context.Context, contractID, receiverID string) (*domain.TransferContract, error)
	RejectContract(ctx context.Context, contractID, reason string) (*domain.TransferContract, error)
	CompleteContract(ctx context.Context, contractID, outputDir string) (*domain.TransferContract, error)
	Contracts(ctx context.Context) ([]domain.TransferContract, error)
}
