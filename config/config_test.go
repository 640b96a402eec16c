package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")))

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, "https://aviationweather.gov", AppConfig.Weather.BaseURL)
	assert.Equal(t, 600*time.Second, AppConfig.Weather.CacheTTL)
	assert.Equal(t, 6, AppConfig.Weather.ObservationHours)
	assert.Equal(t, "https://notams.aim.faa.gov/notamSearch/", AppConfig.Portal.URL)
	assert.Equal(t, 5, AppConfig.Portal.DisclaimerRetries)
	assert.Equal(t, 30*time.Second, AppConfig.Portal.TableWait)
	assert.Equal(t, "designatorsForLocation", AppConfig.Selectors.SearchInputName)
	assert.Equal(t, "table.table.table-striped", AppConfig.Selectors.ResultTableClass)
	assert.Equal(t, "span.icon-excel", AppConfig.Selectors.ExportIconClass)
	assert.Equal(t, []string{"gpt-4o-mini", "gemini-2.5-flash", "grok-3", "gpt-4.1-mini"}, AppConfig.AI.Models)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
weather:
  cache_ttl: "5m"
portal:
  disclaimer_retries: 3
ai:
  models: ["local-model"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, LoadConfig(path))

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, 5*time.Minute, AppConfig.Weather.CacheTTL)
	assert.Equal(t, 3, AppConfig.Portal.DisclaimerRetries)
	assert.Equal(t, []string{"local-model"}, AppConfig.AI.Models)

	// Fields the file left out keep their defaults.
	assert.Equal(t, "https://aviationweather.gov", AppConfig.Weather.BaseURL)
	assert.Equal(t, 15*time.Second, AppConfig.Weather.FetchTimeout)
}

func TestLoadConfigExplicitZeroSticks(t *testing.T) {
	// Zero set by the operator is a real setting, not "unset".
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
portal:
  disclaimer_retries: 0
weather:
  observation_hours: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, LoadConfig(path))

	assert.Equal(t, 0, AppConfig.Portal.DisclaimerRetries)
	assert.Equal(t, 0, AppConfig.Weather.ObservationHours)
}

func TestLoadConfigEnvOverridesAIEndpoint(t *testing.T) {
	t.Setenv("AI_BASE_URL", "http://localhost:11434")
	t.Setenv("AI_API_KEY", "secret")

	require.NoError(t, LoadConfig(""))
	assert.Equal(t, "http://localhost:11434", AppConfig.AI.BaseURL)
	assert.Equal(t, "secret", AppConfig.AI.APIKey)
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weather:\n  cache_ttl: \"notaduration\"\n"), 0644))
	assert.Error(t, LoadConfig(path))
}
