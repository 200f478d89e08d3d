package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudglue/cloudglue-go/cli/config"
)

func (a *App) newInitCommand() *cobra.Command {
	var (
		force      bool
		model      string
		collection string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file with sensible defaults.

The file lands at ~/.cloudglue/config.yaml unless --config is given.

Example:
  cloudglue init
  cloudglue init --collection my-videos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %q already exists (use --force to overwrite)", path)
			}

			cfg := &config.Config{
				DefaultModel:      model,
				DefaultCollection: collection,
				PollInterval:      5,
				WaitTimeout:       600,
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(a.stdout, "Wrote %s\n\n", path)
			fmt.Fprintln(a.stdout, "Next steps:")
			fmt.Fprintln(a.stdout, "  cloudglue keys set")
			fmt.Fprintln(a.stdout, "  cloudglue upload <video.mp4> --wait")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&model, "model", "", "default model for chat")
	cmd.Flags().StringVar(&collection, "collection", "", "default collection for chat")

	return cmd
}
