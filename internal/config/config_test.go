package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "askdb", "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "chat", cfg.DefaultMode)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadFromMigratesMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`server_url = "http://assistant:9000"
default_mode = "simple"
`), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://assistant:9000", cfg.ServerURL)
	assert.Equal(t, "simple", cfg.DefaultMode)
	assert.Equal(t, DefaultKeys(), cfg.Keys)
	assert.Equal(t, "nord", cfg.Theme.SyntaxStyle)
	assert.Equal(t, 60, cfg.RequestTimeoutSeconds)

	// migrated values are persisted for the user to edit
	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Keys, reloaded.Keys)
}

func TestLoadFromRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_mode = "grid"`), 0600))

	_, err := LoadFrom(path)
	assert.ErrorContains(t, err, "default_mode")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	sealed, err := Encrypt("s3cret-token", key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "s3cret")

	plain, err := Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-token", plain)

	_, err = Decrypt("abcd", key)
	assert.Error(t, err)
}

func TestSetAPITokenPersistsEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	secrets := NewMemorySecrets()

	cfg, err := LoadFrom(path, WithSecrets(secrets))
	require.NoError(t, err)
	require.NoError(t, cfg.SetAPIToken(" s3cret-token "))
	assert.Equal(t, "s3cret-token", cfg.APIToken)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "api_token")
	assert.NotContains(t, string(raw), "s3cret")

	reloaded, err := LoadFrom(path, WithSecrets(secrets))
	require.NoError(t, err)
	assert.Equal(t, "s3cret-token", reloaded.APIToken)

	// without the master key the token cannot be read back
	other, err := LoadFrom(path, WithSecrets(NewMemorySecrets()))
	require.NoError(t, err)
	assert.Empty(t, other.APIToken)

	require.NoError(t, reloaded.SetAPIToken(""))
	cleared, err := LoadFrom(path, WithSecrets(secrets))
	require.NoError(t, err)
	assert.Empty(t, cleared.APIToken)
	assert.Empty(t, cleared.EncryptedAPIToken)
}

func TestMasterKeyIsStable(t *testing.T) {
	secrets := NewMemorySecrets()

	first, err := MasterKey(secrets)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := MasterKey(secrets)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, secrets.SetSecret(masterKeyName, "not-hex"))
	_, err = MasterKey(secrets)
	assert.Error(t, err)
}
