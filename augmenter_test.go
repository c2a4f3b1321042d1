package augmenter_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Entity struct {
	ID int
}

type User struct {
	Entity
	Name     string
	Password string
}

func newUserConfig(t *testing.T) *config.Configuration {
	t.Helper()
	cfg := config.New()
	config.Configure(cfg, func(c *domain.TypeConfig[Entity]) {
		c.AddField("ID").As("id")
	})
	config.Configure(cfg, func(c *domain.TypeConfig[User]) {
		c.AddField("Name").As("name")
		c.ConfigureAdd("greeting", func(u User, s domain.ReadOnlyState) (any, error) {
			return s.Value("salutation").(string) + " " + u.Name, nil
		})
	})
	cfg.ConfigureGlobalState(func(_ context.Context, s domain.State) error {
		s["salutation"] = "Hello"
		return nil
	})
	require.NoError(t, cfg.Build())
	return cfg
}

func TestNew_RequiresBuild(t *testing.T) {
	_, err := augmenter.New(config.New())
	assert.ErrorIs(t, err, domain.ErrConfigurationNotBuilt)
}

func TestEngine_Augment(t *testing.T) {
	eng, err := augmenter.New(newUserConfig(t))
	require.NoError(t, err)

	out, err := eng.Augment(context.Background(), &User{Entity: Entity{ID: 1}, Name: "ada", Password: "secret"})
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"name":"ada","greeting":"Hello ada"}`, string(data))
}

func TestEngine_CallOptions(t *testing.T) {
	eng, err := augmenter.New(newUserConfig(t))
	require.NoError(t, err)

	out, err := eng.Augment(context.Background(), []User{{Name: "bob"}},
		augmenter.WithState(func(_ context.Context, s domain.State) error {
			s["salutation"] = "Hi"
			return nil
		}),
		augmenter.Configure(func(c *domain.TypeConfig[User]) {
			c.ConfigureRemove("id", nil)
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"name": "bob", "greeting": "Hi bob"}}, output.ToMap(out))

	// The call options above leave no trace on the next call.
	out, err = eng.Shape(context.Background(), User{Name: "bob"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 0, "name": "bob", "greeting": "Hello bob"}, output.ToMap(out))
}

func TestEngine_DescribeAndOutput(t *testing.T) {
	eng, err := augmenter.New(newUserConfig(t), augmenter.WithOutput(output.Map()))
	require.NoError(t, err)

	described := eng.Describe()
	require.Len(t, described, 2)
	assert.Len(t, described[1].Bases(), 1)

	out, err := eng.Augment(context.Background(), Entity{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 3}, out)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, augmenter.Version)
}
