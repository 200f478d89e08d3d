package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

func (a *App) newUploadCommand() *cobra.Command {
	var (
		wait     bool
		metadata []string
	)

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a video file",
		Long: `Upload a local video file for processing.

Examples:
  cloudglue upload talk.mp4
  cloudglue upload talk.mp4 --wait --metadata speaker=ada --metadata event=gophercon`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := parseMetadata(metadata)
			if err != nil {
				return exitWithCode(ExitValidation, err)
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			a.log.Debug().Str("path", args[0]).Bool("wait", wait).Msg("uploading file")

			file, err := client.Files.Upload(cmd.Context(), args[0], &cloudglue.UploadOptions{
				Metadata:        meta,
				WaitUntilFinish: wait,
				Wait:            *a.waitOptions(),
			})
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(file)
			}

			fmt.Fprintf(a.stdout, "Uploaded %s\n", file.Filename)
			fmt.Fprintf(a.stdout, "  id:     %s\n", file.ID)
			fmt.Fprintf(a.stdout, "  uri:    %s\n", file.URI)
			fmt.Fprintf(a.stdout, "  status: %s\n", file.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until processing finishes")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "metadata entry as key=value (repeatable)")

	return cmd
}

// parseMetadata turns repeated key=value flags into file metadata.
func parseMetadata(pairs []string) (cloudglue.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	meta := make(cloudglue.Metadata, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q: want key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
