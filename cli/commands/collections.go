package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

func (a *App) newCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage video collections",
	}

	cmd.AddCommand(a.newCollectionsListCommand())
	cmd.AddCommand(a.newCollectionsCreateCommand())
	cmd.AddCommand(a.newCollectionsVideosCommand())
	cmd.AddCommand(a.newCollectionsAddCommand())

	return cmd
}

func (a *App) newCollectionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := client.Collections.List(cmd.Context(), nil)
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(list)
			}

			if len(list.Data) == 0 {
				fmt.Fprintln(a.stdout, "No collections.")
				return nil
			}
			for _, c := range list.Data {
				fmt.Fprintf(a.stdout, "%s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func (a *App) newCollectionsCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			collection, err := client.Collections.Create(cmd.Context(), args[0],
				&cloudglue.CollectionParams{Description: description})
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(collection)
			}

			fmt.Fprintf(a.stdout, "Created collection %s (%s)\n", collection.Name, collection.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "collection description")

	return cmd
}

func (a *App) newCollectionsVideosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "videos <collection-id>",
		Short: "List the videos in a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := client.Collections.ListVideos(cmd.Context(), args[0], nil)
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(list)
			}

			if len(list.Data) == 0 {
				fmt.Fprintln(a.stdout, "No videos.")
				return nil
			}
			for _, v := range list.Data {
				fmt.Fprintf(a.stdout, "%s  %s\n", v.FileID, v.Status)
			}
			return nil
		},
	}
}

func (a *App) newCollectionsAddCommand() *cobra.Command {
	var (
		wait    bool
		youtube bool
	)

	cmd := &cobra.Command{
		Use:   "add <collection-id> <file-id|youtube-url>",
		Short: "Add a video to a collection",
		Long: `Add an uploaded file, or a YouTube video with --youtube, to a
collection. The collection's configured pipelines run against the video.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			opts := &cloudglue.AddVideoOptions{
				WaitUntilFinish: wait,
				Wait:            *a.waitOptions(),
			}

			var video *cloudglue.CollectionFile
			if youtube {
				video, err = client.Collections.AddYouTubeVideo(cmd.Context(), args[0], args[1], opts)
			} else {
				video, err = client.Collections.AddVideo(cmd.Context(), args[0], args[1], opts)
			}
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(video)
			}

			fmt.Fprintf(a.stdout, "Added %s: %s\n", video.FileID, video.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until processing finishes")
	cmd.Flags().BoolVar(&youtube, "youtube", false, "treat the argument as a YouTube URL")

	return cmd
}
