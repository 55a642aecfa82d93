package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[database]
host = "localhost"
dbname = "booking"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, SerializationTransaction, cfg.Booking.Serialization)
	assert.Equal(t, 15, cfg.Booking.SlotGranularityMinutes)
	assert.Equal(t, 15, cfg.Booking.CleaningTimeMinutes)
	assert.Equal(t, 5, cfg.Booking.IdentityTimeoutSeconds)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, IdentitySourceStorage, cfg.Identity.Source)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=booking sslmode=disable", cfg.Database.DSN())
}

func TestParse_MemoryDriverWithoutRedisUsesLocalLock(t *testing.T) {
	cfg, err := Parse(`
[storage]
driver = "memory"
`)
	require.NoError(t, err)
	assert.Equal(t, SerializationLocal, cfg.Booking.Serialization)
}

func TestParse_NoneKeepsCheckAndInsertUnserialized(t *testing.T) {
	cfg, err := Parse(`
[storage]
driver = "memory"

[booking]
serialization = "none"
`)
	require.NoError(t, err)
	assert.Equal(t, SerializationNone, cfg.Booking.Serialization)
}

func TestParse_MongoDefaultsToRedisLockWhenEnabled(t *testing.T) {
	cfg, err := Parse(`
[storage]
driver = "mongo"

[mongo]
uri = "mongodb://localhost:27017"

[redis]
enabled = true
`)
	require.NoError(t, err)
	assert.Equal(t, SerializationRedis, cfg.Booking.Serialization)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown driver",
			doc:  "[storage]\ndriver = \"sqlite\"\n",
		},
		{
			name: "transaction without postgres",
			doc:  "[storage]\ndriver = \"memory\"\n[booking]\nserialization = \"transaction\"\n",
		},
		{
			name: "redis lock without redis",
			doc:  "[storage]\ndriver = \"memory\"\n[booking]\nserialization = \"redis\"\n",
		},
		{
			name: "unknown serialization",
			doc:  "[storage]\ndriver = \"memory\"\n[booking]\nserialization = \"queue\"\n",
		},
		{
			name: "kafka without brokers",
			doc:  "[storage]\ndriver = \"memory\"\n[kafka]\nenabled = true\n",
		},
		{
			name: "http identity without url",
			doc:  "[storage]\ndriver = \"memory\"\n[identity]\nsource = \"http\"\n",
		},
		{
			name: "postgres without host",
			doc:  "[storage]\ndriver = \"postgres\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndriver = \"memory\"\n[server]\nhttp_port = 9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/booking/config.toml")
	assert.Equal(t, "custom.toml", Path("custom.toml"))
	assert.Equal(t, "/etc/booking/config.toml", Path(""))

	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.toml", Path(""))
}
