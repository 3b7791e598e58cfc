package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials and establish a session",
	Long: `Prompt for a username and password, verify them against the judge and
store them encrypted in the local cache so expired sessions can be renewed
without asking again.

The encryption key is derived from OJCLI_SECRET_KEY; login fails without it.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, password, err := promptCredentials(cmd)
	if err != nil {
		return err
	}

	if err := theApp.auth.Login(cmd.Context(), username, password); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Logged in as "+username))
	return nil
}

func promptCredentials(cmd *cobra.Command) (string, string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Username: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("read username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "", fmt.Errorf("username must not be empty")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	var password string
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", "", fmt.Errorf("password must not be empty")
	}

	return username, password, nil
}
