/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/Daskott/contactbook/colors"
	devConfig "github.com/Daskott/contactbook/dev/config"
	"github.com/Daskott/contactbook/server"
	"github.com/Daskott/contactbook/shared"
	"github.com/Daskott/contactbook/utils"
	"github.com/Daskott/contactbook/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serverConfigFile string
	isDevEnv         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd = createRootCmd()
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contactbook",
		Short: "contactbook is a contacts API for small CRM teams",
		Long: `contactbook serves a JSON API to manage the contacts of an account,
with search, soft delete & dashboard stats.

Accounts, users & organizations are bootstrapped from this CLI.`,
		Version:       fmt.Sprintf("v%s", version.Version),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&serverConfigFile, "sconfig", "", "config for server")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	cmd.AddCommand(createServerCmd(), createAccountCmd(), createUserCmd(), createOrgCmd())

	return cmd
}

// serverConfig reads the config passed with --sconfig, in dev mode it's
// dev/config/server.yml which gets created when missing
func serverConfig() (*viper.Viper, error) {
	configFile := serverConfigFile

	if isDevEnv && configFile == "" {
		var err error
		configFile, err = devConfigFilePath()
		if err != nil {
			return nil, err
		}
	}

	if configFile == "" {
		return nil, formattedError("must set the server config file with '--sconfig' or use '--dev'")
	}

	return shared.NewConfigReader(configFile)
}

// openStore loads the server config & opens its db, for commands that
// work on data directly
func openStore() error {
	configValues, err := serverConfig()
	if err != nil {
		return err
	}

	config, err := shared.LoadServerConfig(configValues)
	if err != nil {
		return err
	}

	configDir, err := server.ConfigDirectory(isDevEnv, config.Contactbook.DataDir)
	if err != nil {
		return err
	}

	return server.InitStore(config, configDir)
}

func devConfigFilePath() (string, error) {
	configDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	configDir = filepath.Join(configDir, "dev", "config")
	if err = utils.CreateDirIfNotExist(configDir); err != nil {
		return "", err
	}

	configFilePath := filepath.Join(configDir, "server.yml")
	if !utils.FileExist(configFilePath) {
		err = ioutil.WriteFile(configFilePath, []byte(devConfig.SERVER_YML), 0600)
		if err != nil {
			return "", err
		}
	}

	return configFilePath, nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(colors.Red(format), a...)
}
