package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cloudglue/cloudglue-go/cli/keystore"
)

func (a *App) newKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the stored API key",
		Long:  `Manage the Cloudglue API key. Keys are stored in an encrypted file, never in plain text.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store the API key",
		Long:  `Store the API key. The key is prompted without echo for security.`,
		Args:  cobra.NoArgs,
		RunE:  a.runKeysSet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Long:  `List stored key names. Key values are never shown.`,
		RunE:  a.runKeysList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete the stored API key",
		Args:  cobra.NoArgs,
		RunE:  a.runKeysDelete,
	})

	return cmd
}

func (a *App) runKeysSet(cmd *cobra.Command, args []string) error {
	fmt.Fprint(a.stdout, "Enter Cloudglue API key: ")

	// Read without echo if stdin is a terminal.
	var apiKey string
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		keyBytes, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		apiKey = string(keyBytes)
		fmt.Fprintln(a.stdout) // Newline after hidden input
	} else {
		// Fallback for non-terminal (e.g., piped input)
		reader := bufio.NewReader(a.stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		apiKey = strings.TrimSpace(line)
	}

	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	if err := ks.Set(KeyName, apiKey); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Fprintln(a.stdout, "API key stored.")
	return nil
}

func (a *App) runKeysList(cmd *cobra.Command, args []string) error {
	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	names, err := ks.List()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}

	fmt.Fprintln(a.stdout, "Stored keys:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  - %s\n", name)
	}

	return nil
}

func (a *App) runKeysDelete(cmd *cobra.Command, args []string) error {
	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}

	if err := ks.Delete(KeyName); err != nil {
		if _, ok := err.(*keystore.ErrKeyNotFound); ok {
			return fmt.Errorf("no API key stored")
		}
		return fmt.Errorf("failed to delete key: %w", err)
	}

	fmt.Fprintln(a.stdout, "API key deleted.")
	return nil
}
