package cmd

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Daskott/contactbook/server/auth"
	"github.com/Daskott/contactbook/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type TestDataProvider []struct {
	description string
	args        []string
	expectedOut string
}

func writeTestConfig(t *testing.T) string {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)
	keyPem := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})

	dataDir := t.TempDir()
	config := fmt.Sprintf(`
contactbook:
  privateKeyPem: %q
  dataDir: %q
  listener:
    port: 3000
database:
  driver: sqlite
sqlite:
  passPhrase: test-passphrase
`, string(keyPem), dataDir)

	configFile := filepath.Join(dataDir, "server.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0600))

	return configFile
}

func TestDataCmds(t *testing.T) {
	var (
		buff      = new(bytes.Buffer)
		actualOut string
	)

	savedCost := auth.PasswordHashCost
	defer func() {
		auth.PasswordHashCost = savedCost
		serverConfigFile = ""
		isDevEnv = false
	}()
	auth.PasswordHashCost = bcrypt.MinCost

	configFile := writeTestConfig(t)

	cases := TestDataProvider{
		{
			description: "Should fail when no server config is given",
			args:        []string{"account", "create", "--name", "Acme"},
			expectedOut: "must set the server config file",
		},
		{
			description: "Should fail when account name flag is not provided",
			args:        []string{"account", "create", "--sconfig", configFile},
			expectedOut: "\"name\" not set",
		},
		{
			description: "Should create an account",
			args:        []string{"account", "create", "--sconfig", configFile, "--name", "Acme"},
			expectedOut: "account \"Acme\" created with id 1",
		},
		{
			description: "Should NOT create an organization for a missing account",
			args:        []string{"org", "create", "--sconfig", configFile, "--account-id", "42", "--name", "Globex"},
			expectedOut: "account 42 not found",
		},
		{
			description: "Should create an organization",
			args:        []string{"org", "create", "--sconfig", configFile, "--account-id", "1", "--name", "Globex"},
			expectedOut: "organization \"Globex\" created with id 1",
		},
		{
			description: "Should NOT create a user with an invalid email",
			args: []string{"user", "create", "--sconfig", configFile, "--account-id", "1",
				"--email", "jane", "--password", "secret", "--first-name", "Jane", "--last-name", "Doe"},
			expectedOut: "invalid user",
		},
		{
			description: "Should NOT create a user with whitespace in password",
			args: []string{"user", "create", "--sconfig", configFile, "--account-id", "1",
				"--email", "jane@example.com", "--password", "sec ret", "--first-name", "Jane", "--last-name", "Doe"},
			expectedOut: "invalid user",
		},
		{
			description: "Should NOT create a user for a missing account",
			args: []string{"user", "create", "--sconfig", configFile, "--account-id", "42",
				"--email", "jane@example.com", "--password", "secret", "--first-name", "Jane", "--last-name", "Doe"},
			expectedOut: "unable to create user",
		},
		{
			description: "Should create a user",
			args: []string{"user", "create", "--sconfig", configFile, "--account-id", "1",
				"--email", "Jane@Example.com", "--password", "secret", "--first-name", "Jane", "--last-name", "Doe"},
			expectedOut: "user \"jane@example.com\" created with id 1",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			cmd := createRootCmd()

			// Clear output buffer before the next test
			buff.Reset()
			serverConfigFile = ""

			cmd.SetOut(buff)
			cmd.SetErr(buff)
			cmd.SetArgs(c.args)

			cmd.Execute()

			actualOut = buff.String()
			if !strings.Contains(actualOut, c.expectedOut) {
				t.Errorf("Expected: \n\"%s\" \nTo contain: \n\"%s\"", actualOut, c.expectedOut)
			}
		})
	}

	user, err := models.FindUserBy(context.Background(), "email", "jane@example.com")
	require.NoError(t, err)
	assert.True(t, user.Owner, "first user should be an owner")
	assert.Equal(t, uint(1), user.AccountID)
}
