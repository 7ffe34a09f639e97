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
	"strings"

	"github.com/Daskott/contactbook/server"
	"github.com/Daskott/contactbook/server/models"
	"github.com/go-playground/validator"
	"github.com/spf13/cobra"
)

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(createUserCreateCmd())
	return cmd
}

func createUserCreateCmd() *cobra.Command {
	var (
		user  models.User
		owner bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user who can log in to the API",
		Long: `Create a user of an account. The first user ever created is made
the account owner, use --owner for any other.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			validate := validator.New()
			if err := server.RegisterValidators(validate); err != nil {
				return err
			}

			user.Email = strings.ToLower(strings.TrimSpace(user.Email))
			if err := validate.Struct(user); err != nil {
				return formattedError("invalid user: %v", err)
			}

			if err := openStore(); err != nil {
				return err
			}

			ctx := context.Background()
			userExists, err := models.AtLeastOneUserExists(ctx)
			if err != nil {
				return err
			}
			user.Owner = owner || !userExists

			if err := models.CreateUser(ctx, &user); err != nil {
				return formattedError("unable to create user: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %q created with id %v\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().UintVar(&user.AccountID, "account-id", 0, "id of the account the user belongs to")
	cmd.Flags().StringVar(&user.Email, "email", "", "email used to log in")
	cmd.Flags().StringVar(&user.Password, "password", "", "password used to log in")
	cmd.Flags().StringVar(&user.FirstName, "first-name", "", "first name of the user")
	cmd.Flags().StringVar(&user.LastName, "last-name", "", "last name of the user")
	cmd.Flags().BoolVar(&owner, "owner", false, "make the user an account owner")

	for _, flag := range []string{"account-id", "email", "password", "first-name", "last-name"} {
		cmd.MarkFlagRequired(flag)
	}

	return cmd
}
