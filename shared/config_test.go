package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerYml = `
contactbook:
  privateKeyPem: pem
  tokenTTLMinutes: 60
  listener:
    port: 8080
database:
  driver: sqlite
sqlite:
  passPhrase: from-file
`

func writeConfigFile(t *testing.T, content string) string {
	configFile := filepath.Join(t.TempDir(), "server.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadServerConfig(t *testing.T) {
	configValues, err := NewConfigReader(writeConfigFile(t, testServerYml))
	require.NoError(t, err)

	config, err := LoadServerConfig(configValues)
	require.NoError(t, err)

	assert.Equal(t, "pem", config.Contactbook.PrivateKeyPem)
	assert.Equal(t, 60, config.Contactbook.TokenTTLMinutes)
	assert.Equal(t, 8080, config.Contactbook.Listener.Port)
	assert.Equal(t, "from-file", config.Sqlite.PassPhrase)
}

func TestLoadServerConfigEnvOverride(t *testing.T) {
	t.Setenv("SQLITE_PASSPHRASE", "from-env")

	configValues, err := NewConfigReader(writeConfigFile(t, testServerYml))
	require.NoError(t, err)

	config, err := LoadServerConfig(configValues)
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Sqlite.PassPhrase)
}

func TestLoadServerConfigInvalid(t *testing.T) {
	configValues, err := NewConfigReader(writeConfigFile(t, "contactbook:\n  privateKeyPem: pem\n"))
	require.NoError(t, err)

	_, err = LoadServerConfig(configValues)
	assert.Error(t, err)
}

func TestNewConfigReaderMissingFile(t *testing.T) {
	_, err := NewConfigReader(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
