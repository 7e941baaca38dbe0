package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadFromEnv reads so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "SERVER_HOST", "STORAGE_TYPE", "DYNAMODB_TABLE", "DYNAMODB_ENDPOINT",
		"AWS_REGION", "AWS_PROFILE_OVERRIDE", "REDIS_URL", "REDIS_KEY_PREFIX",
		"DATABASE_URL", "LOG_LEVEL", "LOG_REDACT_PII",
		"ECS_CONTAINER_METADATA_URI", "AWS_EXECUTION_ENV",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

storage:
  type: "Redis"
  redis_url: "redis://cache:6379/2"

log:
  level: debug
  redact_pii: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, StorageRedis, cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379/2", cfg.Storage.RedisURL)
	assert.Equal(t, "newsletter:subscriber:", cfg.Storage.RedisKeyPrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.ShouldRedactPII())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, StorageDynamoDB, cfg.Storage.Type)
	assert.Equal(t, "newsletter_subscribers", cfg.Storage.DynamoDBTable)
	assert.Equal(t, "us-east-1", cfg.Storage.AWSRegion)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.ShouldRedactPII())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 7000\nstorage:\n  dynamodb_table: from_yaml\n"), 0644))

	t.Setenv("STORAGE_TYPE", "MEMORY")
	t.Setenv("DYNAMODB_TABLE", "subs_test")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("PORT", "9999")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, "subs_test", cfg.Storage.DynamoDBTable)
	assert.Equal(t, "eu-west-1", cfg.Storage.AWSRegion)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadFromEnvKeepsYAMLWhenEnvUnset(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  type: memory\n  dynamodb_table: from_yaml\n"), 0644))

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, "from_yaml", cfg.Storage.DynamoDBTable)
}

func TestLoadFromEnvUnsupportedStorage(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_TYPE", "cassandra")

	_, err := LoadFromEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage type: cassandra")
}

func TestPostgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_TYPE", "postgres")

	_, err := LoadFromEnv("")
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/newsletter?sslmode=disable")
	cfg, err := LoadFromEnv("")
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage.Type)
}

func TestServerGetHost(t *testing.T) {
	clearEnv(t)
	c := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", c.Addr())

	t.Setenv("AWS_EXECUTION_ENV", "AWS_Lambda_go1.x")
	assert.Equal(t, "0.0.0.0", c.GetHost())
}

func TestGetAWSProfile(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "dev", StorageConfig{AWSProfile: "dev"}.GetAWSProfile())
	assert.Equal(t, "", StorageConfig{AWSProfile: "iam"}.GetAWSProfile())

	t.Setenv("ECS_CONTAINER_METADATA_URI", "http://169.254.170.2/v4")
	assert.Equal(t, "", StorageConfig{AWSProfile: "dev"}.GetAWSProfile())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir on Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
