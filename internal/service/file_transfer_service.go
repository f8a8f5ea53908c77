package service

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"
	"rangerblock/pkg/apperror"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"
)

const (
	// PackageExt is the extension of sealed containers.
	PackageExt = ".rangerblock"
	// PackageVersion is written into every container header.
	PackageVersion = "1.0.0"

	headerLen = len(domain.PackageMagic) + 4
)

// FileTransferConfig holds file transfer settings.
type FileTransferConfig struct {
	// Dir receives packages and extracted files when no directory is given.
	Dir         string
	MaxFileSize int64
}

// DefaultFileTransferConfig stores transfers under dir with a 100 MiB cap.
func DefaultFileTransferConfig(dir string) FileTransferConfig {
	return FileTransferConfig{Dir: filepath.Join(dir, "transfers"), MaxFileSize: 100 << 20}
}

// FileTransfer implements ports.FileTransferService.
//
// A container is laid out as
//
//	"RNGBLK01" | uint32 BE metadata length | metadata JSON | gzip(file)
//
// The metadata carries the sha256 of the original file and the sender's
// signature over the metadata without its signature field.
type FileTransfer struct {
	identity  ports.IdentityStore
	contracts ports.ContractRepository
	audit     ports.SecurityAuditor
	events    *EventBus
	cfg       FileTransferConfig
	log       zerolog.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewFileTransfer creates the file transfer service.
func NewFileTransfer(
	identity ports.IdentityStore,
	contracts ports.ContractRepository,
	audit ports.SecurityAuditor,
	events *EventBus,
	cfg FileTransferConfig,
	log zerolog.Logger,
) *FileTransfer {
	if events == nil {
		events = NewEventBus(0, log)
	}
	return &FileTransfer{
		identity:  identity,
		contracts: contracts,
		audit:     audit,
		events:    events,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

func newID(prefix string, n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return prefix + base58.Encode(b), nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Package seals inputPath into outputDir (the transfer directory when empty).
func (s *FileTransfer) Package(ctx context.Context, inputPath, outputDir string) (*domain.PackageInfo, error) {
	info, err := os.Stat(inputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.ErrFileNotFound(inputPath)
	}
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("stat %s: %w", inputPath, err))
	}
	if info.IsDir() {
		return nil, apperror.Validation(fmt.Sprintf("%s is a directory", inputPath))
	}
	if s.cfg.MaxFileSize > 0 && info.Size() > s.cfg.MaxFileSize {
		return nil, apperror.Validation(fmt.Sprintf("File too large: %d bytes (max %d)", info.Size(), s.cfg.MaxFileSize))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("reading %s: %w", inputPath, err))
	}

	var compressed bytes.Buffer
	zw, _ := gzip.NewWriterLevel(&compressed, gzip.BestCompression)
	if _, err := zw.Write(data); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("compressing: %w", err))
	}
	if err := zw.Close(); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("compressing: %w", err))
	}

	name := filepath.Base(inputPath)
	ext := filepath.Ext(name)
	meta := domain.PackageMetadata{
		Magic:            domain.PackageMagic,
		Version:          PackageVersion,
		OriginalName:     name,
		OriginalExt:      ext,
		OriginalSize:     int64(len(data)),
		OriginalHash:     sha256Hex(data),
		CompressedSize:   int64(compressed.Len()),
		CompressionRatio: compressionRatio(len(data), compressed.Len()),
		MimeType:         mimeType(ext),
		CreatedAt:        s.now().UTC(),
		SenderID:         "unknown",
	}
	if id, err := s.identity.Identity(); err == nil {
		meta.SenderID = id.UserID
		unsigned, _ := json.Marshal(meta)
		if sig, err := s.identity.SignMessage(unsigned); err == nil {
			meta.Signature = sig
		}
	} else {
		s.log.Warn().Err(err).Msg("packaging without identity, container will be unsigned")
	}

	header, err := json.Marshal(meta)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encoding metadata: %w", err))
	}

	container := make([]byte, 0, headerLen+len(header)+compressed.Len())
	container = append(container, domain.PackageMagic...)
	container = binary.BigEndian.AppendUint32(container, uint32(len(header)))
	container = append(container, header...)
	container = append(container, compressed.Bytes()...)

	if outputDir == "" {
		outputDir = s.cfg.Dir
	}
	outPath := filepath.Join(outputDir, strings.TrimSuffix(name, ext)+PackageExt)
	if err := writeOwnerOnly(outPath, container); err != nil {
		return nil, apperror.ErrStorageFailure(err)
	}

	transferID, err := newID("xfer_", 8)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("transfer_id", transferID).
		Str("file", name).
		Int64("size", meta.OriginalSize).
		Int("package_size", len(container)).
		Float64("compression", meta.CompressionRatio).
		Msg("file packaged")

	return &domain.PackageInfo{
		TransferID:   transferID,
		PackagePath:  outPath,
		OriginalHash: meta.OriginalHash,
		PackageHash:  sha256Hex(container),
		OriginalSize: meta.OriginalSize,
		PackageSize:  int64(len(container)),
		Metadata:     meta,
	}, nil
}

func compressionRatio(original, compressed int) float64 {
	if original == 0 {
		return 0
	}
	return math.Round((1-float64(compressed)/float64(original))*1000) / 10
}

func mimeType(ext string) string {
	if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func writeOwnerOnly(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}

// Extract unpacks a container into outputDir and verifies the file hash.
// The signature is checked when the container was sealed by this node.
func (s *FileTransfer) Extract(ctx context.Context, packagePath, outputDir string) (*domain.ExtractResult, error) {
	if id, err := s.identity.Identity(); err == nil {
		return s.extract(packagePath, outputDir, id.PublicKey, id.UserID)
	}
	return s.extract(packagePath, outputDir, "", "")
}

// extract verifies the signature with publicKey when the container names signerID.
// An empty signerID accepts any sender.
func (s *FileTransfer) extract(packagePath, outputDir, publicKey, signerID string) (*domain.ExtractResult, error) {
	raw, err := os.ReadFile(packagePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.ErrFileNotFound(packagePath)
	}
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("reading %s: %w", packagePath, err))
	}

	meta, payload, err := parseContainer(raw)
	if err != nil {
		return nil, err
	}

	limit := meta.OriginalSize
	if s.cfg.MaxFileSize > 0 && (limit <= 0 || limit > s.cfg.MaxFileSize) {
		limit = s.cfg.MaxFileSize
	}
	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, apperror.ErrInvalidPackage("payload is not gzip")
	}
	data, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, apperror.ErrInvalidPackage(fmt.Sprintf("decompressing: %v", err))
	}
	if int64(len(data)) > limit {
		return nil, apperror.ErrInvalidPackage("payload larger than declared")
	}

	extracted := sha256Hex(data)
	if extracted != meta.OriginalHash {
		return nil, apperror.ErrIntegrityMismatch(meta.OriginalHash, extracted)
	}

	res := &domain.ExtractResult{
		FileSize:      int64(len(data)),
		OriginalHash:  meta.OriginalHash,
		ExtractedHash: extracted,
		PackageHash:   sha256Hex(raw),
		Verified:      true,
		Metadata:      *meta,
	}
	if publicKey != "" && meta.Signature != "" && (signerID == "" || signerID == meta.SenderID) {
		valid := verifyMetadata(s.identity, meta, publicKey)
		res.SignatureValid = &valid
	}

	name := filepath.Base(meta.OriginalName)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, apperror.ErrInvalidPackage("bad file name")
	}
	if outputDir == "" {
		outputDir = s.cfg.Dir
	}
	res.OutputPath = filepath.Join(outputDir, name)
	if err := writeOwnerOnly(res.OutputPath, data); err != nil {
		return nil, apperror.ErrStorageFailure(err)
	}

	s.log.Info().
		Str("file", name).
		Str("output", res.OutputPath).
		Int64("size", res.FileSize).
		Msg("package extracted")
	return res, nil
}

func parseContainer(raw []byte) (*domain.PackageMetadata, []byte, error) {
	if len(raw) < headerLen {
		return nil, nil, apperror.ErrInvalidPackage("too short")
	}
	if string(raw[:len(domain.PackageMagic)]) != domain.PackageMagic {
		return nil, nil, apperror.ErrInvalidPackage("bad magic")
	}
	metaLen := int(binary.BigEndian.Uint32(raw[len(domain.PackageMagic):headerLen]))
	if metaLen > len(raw)-headerLen {
		return nil, nil, apperror.ErrInvalidPackage("metadata length out of range")
	}

	var meta domain.PackageMetadata
	if err := json.Unmarshal(raw[headerLen:headerLen+metaLen], &meta); err != nil {
		return nil, nil, apperror.ErrInvalidPackage("metadata is not JSON")
	}
	if meta.Magic != domain.PackageMagic {
		return nil, nil, apperror.ErrInvalidPackage("metadata magic mismatch")
	}
	return &meta, raw[headerLen+metaLen:], nil
}

func verifyMetadata(identity ports.IdentityStore, meta *domain.PackageMetadata, publicKey string) bool {
	unsigned := *meta
	unsigned.Signature = ""
	b, _ := json.Marshal(unsigned)
	return identity.VerifyMessage(b, meta.Signature, publicKey)
}

// CreateContract packages filePath and offers it to receiverID for 24 hours.
func (s *FileTransfer) CreateContract(ctx context.Context, filePath, receiverID string) (*domain.TransferContract, error) {
	if strings.TrimSpace(receiverID) == "" {
		return nil, apperror.Validation("receiver id is required")
	}
	id, err := s.identity.Identity()
	if err != nil {
		return nil, err
	}

	pkg, err := s.Package(ctx, filePath, "")
	if err != nil {
		return nil, err
	}
	contractID, err := newID("contract_", 16)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := s.now().UTC()
	c := &domain.TransferContract{
		ContractID:      contractID,
		Status:          domain.ContractWaitingAccept,
		SenderID:        id.UserID,
		SenderIDHash:    domain.HashPartyID(id.UserID),
		ReceiverID:      receiverID,
		ReceiverIDHash:  domain.HashPartyID(receiverID),
		FileName:        pkg.Metadata.OriginalName,
		FileType:        pkg.Metadata.OriginalExt,
		OriginalHash:    pkg.OriginalHash,
		PackageHash:     pkg.PackageHash,
		OriginalSize:    pkg.OriginalSize,
		PackageSize:     pkg.PackageSize,
		PackagePath:     pkg.PackagePath,
		CreatedAt:       now,
		ExpiresAt:       now.Add(domain.ContractTTL),
		SenderPublicKey: id.PublicKey,
	}

	offer, _ := json.Marshal(domain.OfferData{
		SenderIDHash:   c.SenderIDHash,
		ReceiverIDHash: c.ReceiverIDHash,
		OriginalHash:   c.OriginalHash,
		CreatedAt:      c.CreatedAt,
	})
	if c.SenderSignature, err = s.identity.SignMessage(offer); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.contracts.Save(ctx, c); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("saving contract: %w", err))
	}

	s.log.Info().
		Str("contract_id", c.ContractID).
		Str("receiver", receiverID).
		Str("file", c.FileName).
		Msg("transfer contract created")
	s.events.Publish(domain.Event{Kind: domain.EventContractCreated, At: now, Contract: c})
	return c, nil
}

func (s *FileTransfer) loadLocked(ctx context.Context, contractID string) (*domain.TransferContract, error) {
	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("loading contract: %w", err))
	}
	if c == nil {
		return nil, apperror.ErrNotFound("Contract")
	}
	return c, nil
}

func (s *FileTransfer) failLocked(ctx context.Context, c *domain.TransferContract, reason string) {
	c.Status = domain.ContractFailed
	c.FailReason = reason
	if err := s.contracts.Save(ctx, c); err != nil {
		s.log.Error().Err(err).Str("contract_id", c.ContractID).Msg("failed to save failed contract")
	}
	s.log.Warn().Str("contract_id", c.ContractID).Str("reason", reason).Msg("transfer contract failed")
}

// AcceptContract countersigns a waiting contract on behalf of receiverID.
func (s *FileTransfer) AcceptContract(ctx context.Context, contractID, receiverID string) (*domain.TransferContract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadLocked(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ContractWaitingAccept {
		return nil, apperror.ErrContractState(string(c.Status), string(domain.ContractWaitingAccept))
	}
	if domain.HashPartyID(receiverID) != c.ReceiverIDHash {
		return nil, apperror.ErrContractParty()
	}

	now := s.now().UTC()
	if c.IsExpired(now) {
		s.failLocked(ctx, c, "Contract has expired")
		return nil, apperror.ErrContractExpired()
	}

	offer, _ := json.Marshal(domain.OfferData{
		SenderIDHash:   c.SenderIDHash,
		ReceiverIDHash: c.ReceiverIDHash,
		OriginalHash:   c.OriginalHash,
		CreatedAt:      c.CreatedAt,
	})
	if !s.identity.VerifyMessage(offer, c.SenderSignature, c.SenderPublicKey) {
		s.audit.Record(ctx, domain.EventContractSignatureFail, map[string]any{
			"contractId": c.ContractID,
			"party":      "sender",
		})
		s.failLocked(ctx, c, "Sender signature invalid")
		return nil, apperror.ErrInvalidSignature()
	}

	accept, _ := json.Marshal(domain.AcceptData{
		ContractID:     c.ContractID,
		SenderIDHash:   c.SenderIDHash,
		ReceiverIDHash: c.ReceiverIDHash,
		AcceptedAt:     now,
	})
	sig, err := s.identity.SignMessage(accept)
	if err != nil {
		return nil, err
	}

	c.Status = domain.ContractAccepted
	c.AcceptedAt = &now
	c.ReceiverSignature = sig
	if err := s.contracts.Save(ctx, c); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("saving contract: %w", err))
	}

	s.log.Info().Str("contract_id", c.ContractID).Msg("transfer contract accepted")
	s.events.Publish(domain.Event{Kind: domain.EventContractAccepted, At: now, Contract: c})
	return c, nil
}

// RejectContract closes a contract that has not completed.
func (s *FileTransfer) RejectContract(ctx context.Context, contractID, reason string) (*domain.TransferContract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadLocked(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ContractWaitingAccept && c.Status != domain.ContractAccepted {
		return nil, apperror.ErrContractState(string(c.Status), string(domain.ContractWaitingAccept))
	}
	if reason == "" {
		reason = "Rejected by receiver"
	}

	now := s.now().UTC()
	c.Status = domain.ContractRejected
	c.RejectReason = reason
	c.RejectedAt = &now
	if err := s.contracts.Save(ctx, c); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("saving contract: %w", err))
	}

	s.log.Info().Str("contract_id", c.ContractID).Str("reason", reason).Msg("transfer contract rejected")
	s.events.Publish(domain.Event{Kind: domain.EventContractRejected, At: now, Contract: c})
	return c, nil
}

// CompleteContract extracts the contract's package into outputDir and checks it
// against the agreed hash and the sender's signature.
func (s *FileTransfer) CompleteContract(ctx context.Context, contractID, outputDir string) (*domain.TransferContract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadLocked(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.Status != domain.ContractAccepted {
		return nil, apperror.ErrContractState(string(c.Status), string(domain.ContractAccepted))
	}

	res, err := s.extract(c.PackagePath, outputDir, c.SenderPublicKey, "")
	if err != nil {
		var appErr *apperror.AppError
		reason := err.Error()
		if errors.As(err, &appErr) {
			reason = appErr.Message
		}
		s.failLocked(ctx, c, reason)
		return nil, err
	}
	if res.OriginalHash != c.OriginalHash {
		s.failLocked(ctx, c, "Hash verification failed")
		return nil, apperror.ErrIntegrityMismatch(c.OriginalHash, res.OriginalHash)
	}
	if res.SignatureValid != nil && !*res.SignatureValid {
		s.audit.Record(ctx, domain.EventContractSignatureFail, map[string]any{
			"contractId": c.ContractID,
			"party":      "package",
		})
		s.failLocked(ctx, c, "Package signature invalid")
		return nil, apperror.ErrInvalidSignature()
	}

	now := s.now().UTC()
	c.Status = domain.ContractCompleted
	c.CompletedAt = &now
	c.PackageHash = res.PackageHash
	if err := s.contracts.Save(ctx, c); err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("saving contract: %w", err))
	}

	s.log.Info().
		Str("contract_id", c.ContractID).
		Str("output", res.OutputPath).
		Msg("transfer contract completed")
	s.events.Publish(domain.Event{Kind: domain.EventContractCompleted, At: now, Contract: c})
	return c, nil
}

// Contracts lists every contract, newest first.
func (s *FileTransfer) Contracts(ctx context.Context) ([]domain.TransferContract, error) {
	out, err := s.contracts.List(ctx)
	if err != nil {
		return nil, apperror.ErrStorageFailure(fmt.Errorf("listing contracts: %w", err))
	}
	return out, nil
}
