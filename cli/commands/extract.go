package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

func (a *App) newExtractCommand() *cobra.Command {
	var (
		wait       bool
		prompt     string
		schemaPath string
	)

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract structured data from a video",
		Long: `Start an extraction job for a video URL. Give either a natural
language prompt or a JSON schema file describing the shape to extract.

Examples:
  cloudglue extract https://youtu.be/abc123 --prompt "list each product shown" --wait
  cloudglue extract cloudglue://files/file-123 --schema product.schema.json --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &cloudglue.ExtractParams{Prompt: prompt}
			if schemaPath != "" {
				data, err := os.ReadFile(schemaPath)
				if err != nil {
					return exitWithCode(ExitValidation, fmt.Errorf("failed to read schema: %w", err))
				}
				if err := json.Unmarshal(data, &params.Schema); err != nil {
					return exitWithCode(ExitValidation, fmt.Errorf("invalid schema JSON: %w", err))
				}
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			var job *cloudglue.ExtractJob
			if wait {
				job, err = client.Extract.Run(cmd.Context(), args[0], params, a.waitOptions())
			} else {
				job, err = client.Extract.Create(cmd.Context(), args[0], params)
			}
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(job)
			}

			fmt.Fprintf(a.stdout, "Job %s: %s\n", job.JobID, job.Status)
			if len(job.Data) > 0 {
				var pretty any
				if err := json.Unmarshal(job.Data, &pretty); err == nil {
					out, _ := json.MarshalIndent(pretty, "", "  ")
					fmt.Fprintf(a.stdout, "\n%s\n", out)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the job finishes")
	cmd.Flags().StringVar(&prompt, "prompt", "", "natural language extraction prompt")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON schema file")

	return cmd
}
