package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a BSH Engine",
		Long:  "Authenticate with email and password and store the token pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = loadConfig().Email
			}

			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				_, _ = fmt.Fprint(os.Stdout, "Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if password == "" {
				_, _ = fmt.Fprint(os.Stdout, "Password: ")

				bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				_, _ = fmt.Fprintln(os.Stdout)
			}

			if password == "" {
				return constants.ErrPasswordRequired
			}

			engine, cleanup, err := newEngine(false)
			if err != nil {
				return err
			}
			defer cleanup()

			env, err := engine.Auth().Login(context.Background(), &bsh.LoginParams{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}

			tokens, err := bsh.DecodeData[bsh.AuthTokens](env)
			if err != nil {
				return fmt.Errorf("failed to read login response: %w", err)
			}

			if len(tokens) == 0 || tokens[0].Access == "" {
				return constants.ErrEmptyLoginResult
			}

			config := loadConfig()
			config.Email = email
			config.Token = tokens[0].Access
			config.RefreshToken = tokens[0].Refresh

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in to %s as %s\n", engine.Host(), email)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the BSH Engine",
		Long:  "Remove the stored access and refresh tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""
			config.RefreshToken = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}
