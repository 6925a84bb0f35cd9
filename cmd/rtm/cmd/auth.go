package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dwaring87/rtm-api/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication with the service",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize this machine",
	Long: `Run the authorization handshake.

A one-time URL is printed (and copied to the clipboard). Open it in a
browser, grant access, come back here and press Enter. The resulting token
is stored under the data directory and reused on later runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		frob, err := client.GetFrob(ctx)
		if err != nil {
			return err
		}

		url := client.AuthURL(frob, "delete")
		fmt.Println("Open this URL in a browser and grant access:")
		fmt.Println()
		fmt.Println("  " + url)
		fmt.Println()
		if err := clipboard.WriteAll(url); err == nil {
			fmt.Println("(copied to clipboard)")
		}
		fmt.Print("Press Enter when done... ")
		bufio.NewReader(os.Stdin).ReadString('\n')

		auth, err := client.GetToken(ctx, frob)
		if err != nil {
			return err
		}

		err = config.SaveCredentials(config.CredentialsPath(), &config.Credentials{
			APIKey:   config.APIKey(),
			Token:    auth.Token,
			UserID:   auth.User.ID,
			Username: auth.User.Username,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s.\n", auth.User.Username)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.RemoveCredentials(config.CredentialsPath()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		// Verify the token server-side rather than trusting the file.
		auth, err := client.CheckToken(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%s (user %d, perms %s)\n", auth.User.Username, auth.User.ID, auth.Perms)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}
