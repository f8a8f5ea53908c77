package redis

import (
	"context"
	"testing"

	"rangerblock/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestNonceRepository_LoadUnknown(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewNonceRepository(client, "rbk:")

	h, err := repo.Load(context.Background(), "RBmissing")
	require.NoError(t, err)
	assert.Zero(t, h.Current)
	assert.Empty(t, h.Used)
	assert.Equal(t, uint64(1), h.Next())
}

func TestNonceRepository_SaveAndLoad(t *testing.T) {
	s, client := newTestClient(t)
	repo := NewNonceRepository(client, "rbk:")
	ctx := context.Background()

	h := &domain.NonceHistory{}
	h.Record(h.Next())
	h.Record(h.Next())
	require.NoError(t, repo.Save(ctx, "RBalice", h))

	assert.True(t, s.Exists("rbk:nonce:RBalice"))

	got, err := repo.Load(ctx, "RBalice")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Current)
	assert.True(t, got.IsUsed(1))
	assert.True(t, got.IsUsed(2))
	assert.False(t, got.IsUsed(3))

	other, err := repo.Load(ctx, "RBbob")
	require.NoError(t, err)
	assert.Zero(t, other.Current)
}

func TestNonceRepository_SharedBetweenNodes(t *testing.T) {
	_, client := newTestClient(t)
	nodeA := NewNonceRepository(client, "rbk:")
	nodeB := NewNonceRepository(client, "rbk:")
	ctx := context.Background()

	h, err := nodeA.Load(ctx, "RBalice")
	require.NoError(t, err)
	h.Record(h.Next())
	h.Record(h.Next())
	h.Record(h.Next())
	require.NoError(t, nodeA.Save(ctx, "RBalice", h))

	stale := &domain.NonceHistory{}
	stale.Record(stale.Next())
	err = nodeB.Save(ctx, "RBalice", stale)
	assert.ErrorIs(t, err, ErrNonceRegression)

	got, err := nodeB.Load(ctx, "RBalice")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.Current)
}

func TestNonceRepository_Unavailable(t *testing.T) {
	s, client := newTestClient(t)
	repo := NewNonceRepository(client, "rbk:")
	s.Close()

	_, err := repo.Load(context.Background(), "RBalice")
	assert.ErrorContains(t, err, "redis nonce get")
}
