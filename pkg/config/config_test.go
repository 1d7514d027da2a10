package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: retailos
  log_level: debug
storage:
  driver: memory
engine:
  match_threshold: 0.8
catalog_seed:
  - retailer_id: shop-1
    items:
      - name: rice
        unit: kg
        category: grains
        stock_qty: 50
        unit_price: 60
        min_stock_level: 5
workers:
  - name: stock
    queue_name: stock_check
    subscriber:
      threads: 2
      timeout: 3s
      ttr: 30s
    processor:
      threads: 4
      buffer_size: 16
      timeout: 10s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "retailos", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.8, cfg.Engine.MatchThreshold)
	assert.Equal(t, int32(2), cfg.Engine.CurrencyPrecision)
	assert.Equal(t, 3, cfg.Engine.MaxAlternatives)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CartTTL)

	require.Len(t, cfg.CatalogSeed, 1)
	assert.Equal(t, "shop-1", cfg.CatalogSeed[0].RetailerID)
	assert.Equal(t, 50.0, cfg.CatalogSeed[0].Items[0].StockQty)

	require.Len(t, cfg.Workers, 1)
	assert.Equal(t, 30*time.Second, cfg.Workers[0].Subscriber.TTR)
	assert.NoError(t, cfg.ValidateAPI())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RETAILOS_SERVER_PORT", "9999")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateAPI(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Driver: "mysql"}, Engine: EngineConfig{MatchThreshold: 0.75}}
	assert.ErrorContains(t, cfg.ValidateAPI(), "mysql.dsn")

	cfg.MySQL.DSN = "root@tcp(localhost)/retail"
	assert.ErrorContains(t, cfg.ValidateAPI(), "redis.addr")

	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.ValidateAPI())

	cfg.Storage.Driver = "sqlite"
	assert.ErrorContains(t, cfg.ValidateAPI(), "unsupported")
}

func TestValidateWorker(t *testing.T) {
	cfg := &Config{App: AppConfig{Name: "retailos"}}
	assert.ErrorContains(t, cfg.ValidateWorker(), "lmstfy.host")

	cfg.Lmstfy.Host = "localhost"
	cfg.MySQL.DSN = "dsn"
	assert.ErrorContains(t, cfg.ValidateWorker(), "worker")

	cfg.Workers = []WorkerConfig{{Name: "stock"}}
	assert.NoError(t, cfg.ValidateWorker())
}
