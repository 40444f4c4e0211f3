package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/qubelint-io/qapi-client/pkg/qlclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a QubeLint server",
		Long:  "Authenticate against a QubeLint server and save the credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL := viper.GetString("server")
			token := viper.GetString("token")

			if serverURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Server URL: ")
				serverURL, _ = reader.ReadString('\n')
				serverURL = strings.TrimSpace(serverURL)
			}

			if serverURL == "" {
				return qapi.ErrServerURLRequired
			}

			config := &qapi.Config{ServerURL: serverURL}

			switch {
			case token != "":
				config.Token = token
			default:
				if username == "" {
					reader := bufio.NewReader(os.Stdin)
					fmt.Print("Login: ")
					username, _ = reader.ReadString('\n')
					username = strings.TrimSpace(username)
				}

				if password == "" {
					fmt.Print("Password: ")
					bytePassword, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}
					password = string(bytePassword)
					fmt.Println()
				}

				config.Username = username
				config.Password = password
			}

			client, err := qlclient.New(cmd.Context(), config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials before saving them
			status, err := client.System().Status(cmd.Context())
			if err != nil {
				if qapi.IsAuthentication(err) {
					return fmt.Errorf("invalid credentials: %w", err)
				}

				return fmt.Errorf("failed to connect to server: %w", err)
			}

			viper.Set("server", config.ServerURL)
			viper.Set("token", config.Token)
			viper.Set("username", config.Username)
			viper.Set("password", config.Password)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s (version %s, status %s)\n", config.ServerURL, status.Version, status.Status)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the current server",
		Long:  "Remove the saved credentials from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("token", "")
			viper.Set("username", "")
			viper.Set("password", "")

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
