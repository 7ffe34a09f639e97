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

func createOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage organizations",
	}

	cmd.AddCommand(createOrgCreateCmd())
	return cmd
}

func createOrgCreateCmd() *cobra.Command {
	var (
		accountID uint
		name      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization contacts can belong to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openStore(); err != nil {
				return err
			}

			ctx := context.Background()
			if _, err := models.FindAccount(ctx, accountID); err != nil {
				return formattedError("account %v not found", accountID)
			}

			org, err := models.CreateOrganization(ctx, accountID, name)
			if err != nil {
				return formattedError("unable to create organization: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "organization %q created with id %v\n", org.Name, org.ID)
			return nil
		},
	}

	cmd.Flags().UintVar(&accountID, "account-id", 0, "id of the account the organization belongs to")
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the organization")
	cmd.MarkFlagRequired("account-id")
	cmd.MarkFlagRequired("name")

	return cmd
}
