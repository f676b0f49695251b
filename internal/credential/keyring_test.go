package credential

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/model"
)

type mapRing map[string]string

func (m mapRing) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("getting credential %q: %w", key, ErrNotFound)
	}
	return v, nil
}

type brokenRing struct{}

func (brokenRing) Get(string) (string, error) { return "", errors.New("keyring locked") }

func TestFill(t *testing.T) {
	cfg := &model.AppConfig{}
	cfg.Admin.Secret = "from-config"

	require.NoError(t, Fill(cfg, mapRing{
		KeyGeminiAPIKey: "from-ring",
		KeyAdminSecret:  "ignored",
	}))
	assert.Equal(t, "from-ring", cfg.AI.APIKey)
	assert.Equal(t, "from-config", cfg.Admin.Secret)

	empty := &model.AppConfig{}
	require.NoError(t, Fill(empty, mapRing{}))
	assert.Empty(t, empty.AI.APIKey)

	assert.Error(t, Fill(&model.AppConfig{}, brokenRing{}))
}

func TestSetRejectsUnknownKeys(t *testing.T) {
	err := System{}.Set("jira_token", "x")
	assert.Error(t, err)
	assert.True(t, known(KeyAdminSecret))
}
