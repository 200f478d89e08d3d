package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

func (a *App) newDescribeCommand() *cobra.Command {
	var (
		wait        bool
		noSpeech    bool
		noSceneText bool
		noVisual    bool
	)

	cmd := &cobra.Command{
		Use:   "describe <url>",
		Short: "Generate a rich description of a video",
		Long: `Start a describe job for a video URL. The job produces speech,
on-screen text, and visual scene descriptions per segment; all three are
enabled unless switched off.

Example:
  cloudglue describe https://www.youtube.com/watch?v=abc123 --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			params := &cloudglue.DescribeParams{}
			if noSpeech {
				params.EnableSpeech = cloudglue.Bool(false)
			}
			if noSceneText {
				params.EnableSceneText = cloudglue.Bool(false)
			}
			if noVisual {
				params.EnableVisualSceneDescription = cloudglue.Bool(false)
			}

			var job *cloudglue.DescribeJob
			if wait {
				job, err = client.Describe.Run(cmd.Context(), args[0], params, a.waitOptions())
			} else {
				job, err = client.Describe.Create(cmd.Context(), args[0], params)
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
					fmt.Fprintf(a.stdout, "\n%s\n", job.Data.Summary)
				}
				for _, seg := range job.Data.SegmentDocs {
					fmt.Fprintf(a.stdout, "\n[%.1fs - %.1fs]\n", seg.StartTime, seg.EndTime)
					if seg.Speech != "" {
						fmt.Fprintf(a.stdout, "  speech: %s\n", seg.Speech)
					}
					if seg.VisualSceneDescription != "" {
						fmt.Fprintf(a.stdout, "  visual: %s\n", seg.VisualSceneDescription)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the job finishes")
	cmd.Flags().BoolVar(&noSpeech, "no-speech", false, "skip the speech transcript")
	cmd.Flags().BoolVar(&noSceneText, "no-scene-text", false, "skip on-screen text")
	cmd.Flags().BoolVar(&noVisual, "no-visual", false, "skip visual scene descriptions")

	return cmd
}
