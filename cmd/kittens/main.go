package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyberkittens/cyberkittens-go/internal/client"
)

const apiURLEnv = "KITTENS_API_URL"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		failure.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:           "kittens",
		Short:         "Cyber Kittens CLI",
		Long:          "Command line interface for the Cyber Kittens API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", fmt.Sprintf("API base URL (env %s, default %s)", apiURLEnv, client.DefaultBaseURL))

	newClient := func(withToken bool) (*client.Client, error) {
		token := ""
		if withToken {
			t, err := readToken()
			if err != nil {
				return nil, err
			}
			token = t
		}
		return client.New(resolveAPIURL(apiURL), token), nil
	}

	root.AddCommand(
		registerCmd(newClient),
		loginCmd(newClient),
		logoutCmd(),
		kittenCmd(newClient),
	)
	return root
}

type clientFactory func(withToken bool) (*client.Client, error)

func resolveAPIURL(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(apiURLEnv); v != "" {
		return v
	}
	return client.DefaultBaseURL
}
