package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

var kittenHeaders = []string{"Name", "Color", "Age"}

func kittenCmd(newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitten",
		Short: "Manage your kittens",
	}
	cmd.AddCommand(
		getKittenCmd(newClient),
		createKittenCmd(newClient),
		deleteKittenCmd(newClient),
	)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid kitten id %q", arg)
	}
	return id, nil
}

func getKittenCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a kitten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(true)
			if err != nil {
				return err
			}
			k, err := c.GetKitten(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), kittenHeaders, [][]any{{k.Name, k.Color, k.Age}})
			return nil
		},
	}
}

func createKittenCmd(newClient clientFactory) *cobra.Command {
	var req model.CreateKittenRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a kitten",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(true)
			if err != nil {
				return err
			}
			k, err := c.CreateKitten(cmd.Context(), req)
			if err != nil {
				return err
			}
			success.Fprintln(cmd.OutOrStdout(), "Kitten created.")
			renderTable(cmd.OutOrStdout(), kittenHeaders, [][]any{{k.Name, k.Color, k.Age}})
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "kitten name")
	cmd.Flags().StringVar(&req.Color, "color", "", "kitten color")
	cmd.Flags().IntVar(&req.Age, "age", 0, "kitten age")
	cmd.MarkFlagRequired("name")
	return cmd
}

func deleteKittenCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a kitten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := newClient(true)
			if err != nil {
				return err
			}
			if err := c.DeleteKitten(cmd.Context(), id); err != nil {
				return err
			}
			success.Fprintf(cmd.OutOrStdout(), "Kitten %d deleted.\n", id)
			return nil
		},
	}
}
