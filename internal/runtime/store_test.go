package runtime_test

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/augmenter/internal/runtime"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type D struct {
	A
	Note string
}

func chainConfig(cfg *config.Configuration) {
	config.Configure(cfg, func(c *domain.TypeConfig[A]) { c.AddField("ID") })
	config.Configure(cfg, func(c *domain.TypeConfig[B]) { c.AddField("Name") })
	config.Configure(cfg, func(c *domain.TypeConfig[C]) { c.AddField("Email") })
}

func TestStore_ResolveDeclaredAndForced(t *testing.T) {
	e := newEngine(t, chainConfig)
	store := e.Store()

	c := store.Resolve(reflect.TypeOf(&C{}), false)
	require.NotNil(t, c)
	assert.Equal(t, reflect.TypeOf(C{}), c.Type())
	require.Len(t, c.Bases(), 2)
	assert.Equal(t, reflect.TypeOf(A{}), c.Bases()[0].Type())
	assert.Equal(t, reflect.TypeOf(B{}), c.Bases()[1].Type())
	assert.True(t, c.Frozen())
	assert.Same(t, c, store.Resolve(reflect.TypeOf(C{}), false), "pointer and value share one entry")

	assert.Nil(t, store.Resolve(reflect.TypeOf(D{}), false), "undeclared types resolve to nothing")
	forced := store.Resolve(reflect.TypeOf(D{}), true)
	require.NotNil(t, forced)
	assert.True(t, forced.Empty())
	require.Len(t, forced.Bases(), 1)
	assert.Same(t, forced, store.Resolve(reflect.TypeOf(D{}), true))
	assert.Nil(t, store.Resolve(reflect.TypeOf(D{}), false), "a forced build does not declare the type")

	assert.Nil(t, store.Resolve(nil, true))
}

func TestStore_ConcurrentResolutionBuildsOnce(t *testing.T) {
	var builds atomic.Int32
	e := newEngine(t, chainConfig, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnResolve: func(ev *domain.ResolveEvent) {
			if ev.TypeName == "runtime_test.C" {
				builds.Add(1)
			}
		},
	}))

	results := make([]*domain.TypeConfiguration, 64)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.Store().Resolve(reflect.TypeOf(C{}), false)
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, int32(1), builds.Load())
}

func TestStore_DescribeFollowsDeclarationOrder(t *testing.T) {
	e := newEngine(t, chainConfig)
	described := e.Store().Describe()
	require.Len(t, described, 3)
	assert.Equal(t, reflect.TypeOf(A{}), described[0].Type())
	assert.Equal(t, reflect.TypeOf(C{}), described[2].Type())
	assert.Len(t, described[2].Bases(), 2)
}
