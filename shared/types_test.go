package shared

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func validConfig() ServerConfig {
	return ServerConfig{
		Sqlite: SqliteConfig{PassPhrase: "passphrase"},
		Contactbook: ContactbookConfig{
			PrivateKeyPem: "pem",
			Listener:      ListenerConfig{Port: 3000},
		},
	}
}

func TestServerConfigValidation(t *testing.T) {
	validate := validator.New()
	RegisterConfigValidators(validate)

	testCases := []struct {
		desc    string
		mutate  func(config *ServerConfig)
		isValid bool
	}{
		{"sqlite defaults", func(config *ServerConfig) {}, true},
		{"sqlite without passphrase", func(config *ServerConfig) { config.Sqlite.PassPhrase = "" }, false},
		{"postgres without dsn", func(config *ServerConfig) { config.Database.Driver = "postgres" }, false},
		{"postgres with dsn", func(config *ServerConfig) {
			config.Sqlite.PassPhrase = ""
			config.Database = DatabaseConfig{Driver: "postgres", DSN: "host=localhost"}
		}, true},
		{"unknown driver", func(config *ServerConfig) { config.Database.Driver = "mysql" }, false},
		{"missing port", func(config *ServerConfig) { config.Contactbook.Listener.Port = 0 }, false},
		{"missing private key", func(config *ServerConfig) { config.Contactbook.PrivateKeyPem = "" }, false},
		{"backup without bucket", func(config *ServerConfig) {
			config.Google.Storage = StorageConfig{EnableSqliteBackupAndSync: true, SqliteBackupSchedule: "0 * * * *"}
		}, false},
		{"backup enabled", func(config *ServerConfig) {
			config.Google.Storage = StorageConfig{
				EnableSqliteBackupAndSync: true,
				Bucket:                    "contactbook",
				SqliteBackupSchedule:      "0 * * * *",
			}
		}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			config := validConfig()
			tc.mutate(&config)

			err := validate.Struct(config)
			if tc.isValid {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}
