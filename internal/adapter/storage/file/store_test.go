package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rangerblock/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EnsureAndPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".rangerblock-secure")
	s := NewStore(dir)
	require.NoError(t, s.Ensure())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	require.NoError(t, s.Write("secure_identity.enc", []byte(`{"encrypted":"x"}`)))
	fi, err := os.Stat(filepath.Join(dir, "secure_identity.enc"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestStore_ReadWrite(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Ensure())

	b, err := s.Read("missing")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.False(t, s.Exists("missing"))

	require.NoError(t, s.Write("a.json", []byte("one")))
	require.NoError(t, s.Write("a.json", []byte("two")))

	b, err = s.Read("a.json")
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
	assert.True(t, s.Exists("a.json"))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, s.Remove("a.json"))
	require.NoError(t, s.Remove("a.json"))
	assert.False(t, s.Exists("a.json"))
}

func TestStore_NamesStayInsideDir(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Ensure())

	require.NoError(t, s.Write("../escape.txt", []byte("x")))
	assert.True(t, s.Exists("escape.txt"))
}

func TestNonceRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewNonceRepository(dir)

	h, err := repo.Load(ctx, "RB_A")
	require.NoError(t, err)
	assert.Zero(t, h.Current)
	assert.Empty(t, h.Used)

	h.Record(h.Next())
	h.Record(h.Next())
	require.NoError(t, repo.Save(ctx, "RB_A", h))
	require.NoError(t, repo.Save(ctx, "RB_B", &domain.NonceHistory{Current: 9, Used: []uint64{9}}))

	reopened := NewNonceRepository(dir)
	got, err := reopened.Load(ctx, "RB_A")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Current)
	assert.Equal(t, []uint64{1, 2}, got.Used)

	raw, err := os.ReadFile(filepath.Join(dir, NonceFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"RB_B"`)
	assert.Contains(t, string(raw), `"current": 9`)
}

func TestRateLimitRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRateLimitRepository(t.TempDir())

	w, err := repo.Load(ctx, "RB_A")
	require.NoError(t, err)
	assert.Nil(t, w)

	win := domain.NewRateLimitWindow(time.UnixMilli(1_700_000_000_000))
	win.Record(12.5)
	require.NoError(t, repo.Save(ctx, "RB_A", win))

	got, err := repo.Load(ctx, "RB_A")
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.DailyTotal)
	assert.Equal(t, 1, got.TxCount)
	assert.Equal(t, int64(1_700_000_000_000), got.WindowStart)
}

func TestSecurityLog_Append(t *testing.T) {
	dir := t.TempDir()
	log := NewSecurityLog(dir)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, log.Append(context.Background(), &domain.SecurityEvent{
		Type:      domain.EventHardwareMismatch,
		Details:   map[string]any{"matchScore": 0.6},
		CreatedAt: at,
	}))
	require.NoError(t, log.Append(context.Background(), &domain.SecurityEvent{
		Type:      domain.EventVMEntropyCreated,
		CreatedAt: at,
	}))

	raw, err := os.ReadFile(filepath.Join(dir, SecurityLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[2026-01-02T03:04:05Z] HARDWARE_MISMATCH: {"matchScore":0.6}`, lines[0])
	assert.Equal(t, `[2026-01-02T03:04:05Z] VM_ENTROPY_CREATED: {}`, lines[1])
}

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(t.TempDir())

	chain, err := repo.LoadChain(ctx)
	require.NoError(t, err)
	assert.Empty(t, chain)

	tx1 := domain.LedgerTransaction{TxID: "tx_1", Type: domain.LedgerTxTokenTransfer}
	tx2 := domain.LedgerTransaction{TxID: "tx_2", Type: domain.LedgerTxTokenTransfer}
	require.NoError(t, repo.SavePending(ctx, []domain.LedgerTransaction{tx1, tx2}))

	pending, err := repo.LoadPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	block := &domain.Block{Index: 0, Hash: "00aa", Transactions: []domain.LedgerTransaction{tx1}}
	require.NoError(t, repo.SaveBlock(ctx, block, []domain.LedgerTransaction{tx2}))

	chain, err = repo.LoadChain(ctx)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, "00aa", chain[0].Hash)

	pending, err = repo.LoadPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "tx_2", pending[0].TxID)

	require.NoError(t, repo.SaveBlock(ctx, &domain.Block{Index: 1, Hash: "00bb"}, nil))
	pending, err = repo.LoadPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestContractRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(t.TempDir())
	now := time.Now().UTC()

	got, err := repo.Get(ctx, "contract_missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	older := &domain.TransferContract{ContractID: "contract_a", Status: domain.ContractWaitingAccept, CreatedAt: now.Add(-time.Hour)}
	newer := &domain.TransferContract{ContractID: "contract_b", Status: domain.ContractWaitingAccept, CreatedAt: now}
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	older.Status = domain.ContractRejected
	require.NoError(t, repo.Save(ctx, older))

	got, err = repo.Get(ctx, "contract_a")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractRejected, got.Status)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "contract_b", list[0].ContractID)
}
