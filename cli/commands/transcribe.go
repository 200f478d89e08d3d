package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

func (a *App) newTranscribeCommand() *cobra.Command {
	var (
		wait    bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe <url>",
		Short: "Transcribe a video",
		Long: `Start a transcription job for a video URL (a YouTube URL or the
URI of an uploaded file).

Examples:
  cloudglue transcribe https://www.youtube.com/watch?v=abc123 --wait
  cloudglue transcribe cloudglue://files/file-123 --wait --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			params := &cloudglue.TranscribeParams{EnableSummary: summary}

			var job *cloudglue.TranscribeJob
			if wait {
				job, err = client.Transcribe.Run(cmd.Context(), args[0], params, a.waitOptions())
			} else {
				job, err = client.Transcribe.Create(cmd.Context(), args[0], params)
			}
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(job)
			}

			fmt.Fprintf(a.stdout, "Job %s: %s\n", job.JobID, job.Status)
			if job.Data != nil {
				if job.Data.Summary != "" {
					fmt.Fprintf(a.stdout, "\nSummary:\n%s\n", job.Data.Summary)
				}
				fmt.Fprintf(a.stdout, "\n%s\n", job.Data.Transcript)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the job finishes")
	cmd.Flags().BoolVar(&summary, "summary", false, "also generate a summary")

	return cmd
}
