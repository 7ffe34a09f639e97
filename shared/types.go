package shared

import "github.com/go-playground/validator"

type ServerConfig struct {
	Sqlite      SqliteConfig      `mapstructure:"sqlite"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Contactbook ContactbookConfig `mapstructure:"contactbook" validate:"required"`
	Google      GoogleConfig      `mapstructure:"google"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"omitempty,oneof=sqlite postgres"`
	DSN    string `mapstructure:"dsn"`
}

type ContactbookConfig struct {
	PrivateKeyPem   string         `mapstructure:"privateKeyPem" validate:"required"`
	TokenTTLMinutes int            `mapstructure:"tokenTTLMinutes" validate:"omitempty,min=1"`
	TimeZone        string         `mapstructure:"timeZone"`
	DataDir         string         `mapstructure:"dataDir"`
	Listener        ListenerConfig `mapstructure:"listener" validate:"required"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type ListenerConfig struct {
	Port                  int `mapstructure:"port" validate:"required,min=1,max=65535"`
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=1"`
}

type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket"`
	Prefix                    string `mapstructure:"prefix"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}

// RegisterConfigValidators adds the checks that depend on more than one
// config value
func RegisterConfigValidators(validate *validator.Validate) {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		config := sl.Current().Interface().(ServerConfig)

		if config.Database.Driver == "postgres" {
			if config.Database.DSN == "" {
				sl.ReportError(config.Database.DSN, "dsn", "DSN", "required", "")
			}
		} else if config.Sqlite.PassPhrase == "" {
			sl.ReportError(config.Sqlite.PassPhrase, "passPhrase", "PassPhrase", "required", "")
		}
	}, ServerConfig{})

	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		storage := sl.Current().Interface().(StorageConfig)
		if !storage.EnableSqliteBackupAndSync {
			return
		}

		if storage.Bucket == "" {
			sl.ReportError(storage.Bucket, "bucket", "Bucket", "required", "")
		}

		if storage.SqliteBackupSchedule == "" {
			sl.ReportError(storage.SqliteBackupSchedule, "sqliteBackupSchedule", "SqliteBackupSchedule", "required", "")
		}
	}, StorageConfig{})
}
