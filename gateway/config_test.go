package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte(`
token: Bot abc123
shard_id: 2
shard_count: 4
intents: 513
reconnect_base_delay: 2000000000
`), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Bot abc123", cfg.Token)
	assert.Equal(t, 2, cfg.ShardID)
	assert.Equal(t, 4, cfg.ShardCount)
	assert.Equal(t, 2*time.Second, cfg.ReconnectBaseDelay)
	assert.Equal(t, DefaultGatewayURL, cfg.GatewayURL, "unset fields fall back to WithDefaults")
	assert.Equal(t, defaultLargeThreshold, cfg.LargeThreshold)
}

func TestLoadConfigFileMissingPath(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
