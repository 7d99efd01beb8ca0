package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path"

	urfave "github.com/urfave/cli/v2"
	"github.com/zalando/go-keyring"
)

const (
	keyFileName    = "provider_key"
	keyringService = "aictl"
	keyringUser    = "stress_provider_key"
)

var (
	keyFlag = &urfave.StringFlag{
		Name:  "key",
		Usage: "API key for the economic stress indicator provider",
	}

	authCmd = &urfave.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Store the stress provider API key in the OS keychain",
		Action:          cmdAuth,
		Flags: []urfave.Flag{
			keyFlag,
		},
	}
)

func cmdAuth(c *urfave.Context) error {
	key := c.String(keyFlag.Name)
	if key == "" {
		fmt.Print("Paste the provider API key and hit enter:\n> ")
		if _, err := fmt.Scanln(&key); err != nil {
			return fmt.Errorf("reading user input: %w", err)
		}
	}
	if key == "" {
		return fmt.Errorf("api key required")
	}

	cfg := getConfig(c)
	if err := saveProviderKey(cfg.Home, key); err != nil {
		return fmt.Errorf("saving api key: %w", err)
	}

	fmt.Println("API key saved")
	return nil
}

func saveProviderKey(home, key string) error {
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return os.WriteFile(path.Join(home, keyFileName), []byte(key), 0600)
	}

	// Clean up the fallback file if it exists
	os.Remove(path.Join(home, keyFileName))

	return nil
}

func getProviderKey(home string) (string, error) {
	// Try keychain first
	key, err := keyring.Get(keyringService, keyringUser)
	if err == nil && key != "" {
		return key, nil
	}

	// Fall back to file
	keyPath := path.Join(home, keyFileName)
	b, err := os.ReadFile(keyPath)
	if err != nil {
		return "", fmt.Errorf("reading key file %s: %w", keyPath, err)
	}
	key = string(b)

	// Migrate to keychain
	if migrateErr := keyring.Set(keyringService, keyringUser, key); migrateErr == nil {
		slog.Info("migrated api key from file to OS keychain")
		os.Remove(keyPath)
	}

	return key, nil
}
