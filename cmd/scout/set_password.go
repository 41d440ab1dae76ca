package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scout/pkg/config"
)

var newPassword string

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set the settings server password",
	Long: `Set the password for the settings HTTP API.
The JWT secret is rotated automatically, invalidating all existing sessions.

Examples:
  # Interactive password input
  scout set-password

  # Non-interactive
  scout set-password --password newpass`,
	Run: runSetPassword,
}

func init() {
	setPasswordCmd.Flags().StringVar(&newPassword, "password", "", "new password")
	rootCmd.AddCommand(setPasswordCmd)
}

func runSetPassword(cmd *cobra.Command, args []string) {
	password := strings.TrimSpace(newPassword)
	if password == "" {
		fmt.Print("Enter new password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimSpace(string(raw))
		if password == "" {
			fmt.Fprintln(os.Stderr, "Error: password cannot be empty")
			os.Exit(1)
		}

		fmt.Print("Confirm password: ")
		raw2, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
		if string(raw) != string(raw2) {
			fmt.Fprintln(os.Stderr, "Error: passwords do not match")
			os.Exit(1)
		}
	}

	loader := config.NewLoader()
	cfg, err := loader.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	hash, err := config.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	cfg.Server.PasswordHash = hash
	// Rotate to invalidate all sessions.
	cfg.Server.JWTSecret = config.GenerateJWTSecret()

	path := loader.GetConfigPath()
	if path == "" {
		home, err := config.GetConfigHome()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error locating config: %v\n", err)
			os.Exit(1)
		}
		path = filepath.Join(home, "config.json")
	}

	if err := loader.Save(path, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Password updated. All existing sessions have been invalidated.")
	fmt.Println("Start the server with: scout serve")
}
