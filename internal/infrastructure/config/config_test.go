package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg := LoadFromEnv()
	assert.Equal(t, ".", cfg.Workspace.Dir)
	assert.Equal(t, "家庭账本", cfg.Workspace.LedgerPrefix)
	assert.Equal(t, "wechat_bill", cfg.Workspace.ExportPrefix)
	assert.Equal(t, "rules.json", cfg.Workspace.RulesFile)
	assert.Equal(t, "ledger_data.json", cfg.Output.SnapshotFile)
	assert.Equal(t, "chatlog.md", cfg.Output.RunLogFile)
	assert.Equal(t, "ledgersync.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("LEDGERSYNC_DIR", "/data/bills")
	t.Setenv("LEDGERSYNC_LEDGER_PREFIX", "ledger")
	t.Setenv("LEDGERSYNC_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadFromEnv()
	assert.Equal(t, "/data/bills", cfg.Workspace.Dir)
	assert.Equal(t, "ledger", cfg.Workspace.LedgerPrefix)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoadFromEnv_BadPortFallsBack(t *testing.T) {
	t.Setenv("LEDGERSYNC_PORT", "not-a-number")
	cfg := LoadFromEnv()
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgersync.yaml")
	content := `
workspace:
  dir: /srv/ledger
  export_prefix: 微信支付账单
storage:
  database_path: ""
server:
  port: 7000
  allowed_origins:
    - https://dashboard.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/ledger", cfg.Workspace.Dir)
	assert.Equal(t, "微信支付账单", cfg.Workspace.ExportPrefix)
	assert.Equal(t, "家庭账本", cfg.Workspace.LedgerPrefix, "values absent from the file keep their defaults")
	assert.Equal(t, "", cfg.Storage.DatabasePath, "explicit empty path disables run history")
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: ["), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadOrEnvWithPath_FallsBack(t *testing.T) {
	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, "家庭账本", cfg.Workspace.LedgerPrefix)
}
