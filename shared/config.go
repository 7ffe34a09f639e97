package shared

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"
)

// NewConfigReader returns a viper instance reading 'configFile', values
// can be overridden by env vars e.g. SQLITE_PASSPHRASE for sqlite.passPhrase
func NewConfigReader(configFile string) (*viper.Viper, error) {
	config := viper.New()
	config.SetConfigFile(configFile)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading server config file: %v", err)
	}

	return config, nil
}

// LoadServerConfig decodes & validates the server config held by 'configValues'
func LoadServerConfig(configValues *viper.Viper) (*ServerConfig, error) {
	config := ServerConfig{}

	err := configValues.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("unable to decode server config: %v", err)
	}

	configValidator := validator.New()
	RegisterConfigValidators(configValidator)

	err = configValidator.Struct(config)
	if err != nil {
		return nil, fmt.Errorf("invalid server config: %v", err)
	}

	return &config, nil
}
