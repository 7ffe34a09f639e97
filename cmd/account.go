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
	"context"
	"fmt"

	"github.com/Daskott/contactbook/server/models"
	"github.com/spf13/cobra"
)

func createAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(createAccountCreateCmd())
	return cmd
}

func createAccountCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long:  `Create an account, every user, organization & contact belongs to one`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openStore(); err != nil {
				return err
			}

			account, err := models.CreateAccount(context.Background(), name)
			if err != nil {
				return formattedError("unable to create account: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "account %q created with id %v\n", account.Name, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the account")
	cmd.MarkFlagRequired("name")

	return cmd
}
