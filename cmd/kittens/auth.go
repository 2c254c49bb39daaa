package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func credentialFlags(cmd *cobra.Command, username, password *string) {
	cmd.Flags().StringVarP(username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
}

func registerCmd(newClient clientFactory) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(false)
			if err != nil {
				return err
			}
			resp, err := c.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if resp.Token == "" {
				return errors.New("registration succeeded but no token returned")
			}
			if err := saveToken(resp.Token); err != nil {
				return err
			}
			success.Fprintf(cmd.OutOrStdout(), "Registered %s. Token stored locally.\n", username)
			return nil
		},
	}
	credentialFlags(cmd, &username, &password)
	return cmd
}

func loginCmd(newClient clientFactory) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(false)
			if err != nil {
				return err
			}
			resp, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if resp.Token == "" {
				return errors.New("login succeeded but no token returned")
			}
			if err := saveToken(resp.Token); err != nil {
				return err
			}
			success.Fprintln(cmd.OutOrStdout(), "Login successful. Token stored locally.")
			return nil
		},
	}
	credentialFlags(cmd, &username, &password)
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := removeToken(); err != nil {
				return err
			}
			success.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
