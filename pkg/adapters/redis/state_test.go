package redis_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/augmenter/pkg/adapters/redis"
	"github.com/aretw0/augmenter/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct{ ID int }

func newLoader(t *testing.T) (*redis.StateLoader, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, redis.WithPrefix("test:")), mr
}

func TestStateLoader_Global(t *testing.T) {
	loader, mr := newLoader(t)
	ctx := context.Background()

	mr.HSet("test:tenant", "currency", "EUR", "locale", "pt-BR")

	state := domain.State{"existing": true}
	require.NoError(t, loader.Global("tenant")(ctx, state))
	assert.Equal(t, domain.State{"existing": true, "currency": "EUR", "locale": "pt-BR"}, state)

	empty := domain.State{}
	require.NoError(t, loader.Global("missing")(ctx, empty))
	assert.Empty(t, empty)
}

func TestStateLoader_NestedAndSave(t *testing.T) {
	loader, _ := newLoader(t)
	ctx := context.Background()

	require.NoError(t, loader.Save(ctx, "owner:7", map[string]any{"plan": "pro"}))
	require.NoError(t, loader.Save(ctx, "owner:8", nil))

	fn := loader.Nested(func(parent any) (string, bool) {
		o, ok := parent.(*owner)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("owner:%d", o.ID), true
	})

	add := domain.State{}
	require.NoError(t, fn(ctx, &owner{ID: 7}, domain.ReadOnlyState{}, add))
	assert.Equal(t, "pro", add["plan"])

	skipped := domain.State{}
	require.NoError(t, fn(ctx, "not an owner", domain.ReadOnlyState{}, skipped))
	assert.Empty(t, skipped)
}

func TestStateLoader_ConnectionError(t *testing.T) {
	loader, mr := newLoader(t)
	mr.Close()

	err := loader.Global("tenant")(context.Background(), domain.State{})
	assert.Error(t, err)
	assert.Error(t, loader.Ping(context.Background()))
}
