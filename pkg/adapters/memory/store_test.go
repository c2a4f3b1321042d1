package memory_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/aretw0/augmenter/pkg/adapters/memory"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Save(ctx, "tenant", map[string]any{"currency": "EUR"}))
	require.NoError(t, s.Save(ctx, "tenant", map[string]any{"locale": "pt-BR"}))
	require.NoError(t, s.Save(ctx, "ignored", nil))

	got := s.Load(ctx, "tenant")
	assert.Equal(t, map[string]any{"currency": "EUR", "locale": "pt-BR"}, got)

	got["currency"] = "USD"
	assert.Equal(t, "EUR", s.Load(ctx, "tenant")["currency"], "Load returns a copy")

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant"}, keys)

	require.NoError(t, s.Delete(ctx, "tenant"))
	assert.Nil(t, s.Load(ctx, "tenant"))
}

func TestStore_StateSource(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Save(ctx, "tenant", map[string]any{"currency": "EUR"}))
	require.NoError(t, s.Save(ctx, "owner:1", map[string]any{"plan": "pro"}))

	state := domain.State{}
	require.NoError(t, s.Global("tenant")(ctx, state))
	assert.Equal(t, "EUR", state["currency"])

	fn := s.Nested(func(parent any) (string, bool) {
		id, ok := parent.(int)
		if !ok {
			return "", false
		}
		return "owner:" + strconv.Itoa(id), true
	})
	add := domain.State{}
	require.NoError(t, fn(ctx, 1, domain.ReadOnlyState{}, add))
	assert.Equal(t, "pro", add["plan"])

	skipped := domain.State{}
	require.NoError(t, fn(ctx, "x", domain.ReadOnlyState{}, skipped))
	assert.Empty(t, skipped)
}

func TestStore_Concurrency(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(ctx, "k", map[string]any{"v": i})
			_ = s.Global("k")(ctx, domain.State{})
		}(i)
	}
	wg.Wait()
	assert.Contains(t, s.Load(ctx, "k"), "v")
}
