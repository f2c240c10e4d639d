package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/luminesce-sdk/internal/constants"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// maskedTokenPrefix is the number of token characters shown without --show.
const maskedTokenPrefix = 8

// TokenInfo is the output of the token command.
type TokenInfo struct {
	TokenURL    string `json:"token_url"    yaml:"token_url"`
	AccessToken string `json:"access_token" yaml:"access_token"`
}

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Fetch an access token",
		Long:  "Fetch an access token with the configured credentials. The client secret is prompted for when missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiConfig, err := sdk.LoadAPIConfiguration(secretsPath())
			if err != nil {
				return err
			}

			err = promptForClientSecret(cmd, apiConfig)
			if err != nil {
				return err
			}

			config, err := apifactory.NewConfiguration(apiConfig)
			if err != nil {
				return err
			}

			token, err := config.TokenProvider.GetToken(cmd.Context())
			if err != nil {
				return err
			}

			if !show {
				token = maskToken(token)
			}

			info := TokenInfo{TokenURL: apiConfig.TokenURL, AccessToken: token}

			return writeOutput(cmd.OutOrStdout(), info, []string{"Property", "Value"}, [][]string{
				{"Token URL", info.TokenURL},
				{"Access Token", info.AccessToken},
			})
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the full token")

	return cmd
}

// promptForClientSecret reads a missing client secret from the terminal.
// Personal access tokens and non-interactive sessions are left unchanged.
func promptForClientSecret(cmd *cobra.Command, apiConfig *sdk.APIConfiguration) error {
	if apiConfig.PersonalAccessToken != "" || apiConfig.ClientSecret != "" || apiConfig.ClientID == "" {
		return nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Client Secret: ")

	secretBytes, err := term.ReadPassword(fd)
	if err != nil {
		return fmt.Errorf("failed to read client secret: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	apiConfig.ClientSecret = string(secretBytes)

	return nil
}

func maskToken(token string) string {
	if len(token) <= maskedTokenPrefix {
		return constants.MaskedSecret
	}

	return token[:maskedTokenPrefix] + constants.MaskedSecret
}
