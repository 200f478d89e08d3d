package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cloudglue "github.com/cloudglue/cloudglue-go"
)

func (a *App) newChatCommand() *cobra.Command {
	var (
		prompt     string
		model      string
		collection string
		citations  bool
		stream     bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with a video collection",
		Long: `Ask a question grounded in the videos of a collection.

Examples:
  cloudglue chat --collection coll-123 --prompt "What products were demoed?"
  cloudglue chat --prompt "Summarize the keynote" --stream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompt == "" {
				return exitWithCode(ExitValidation, fmt.Errorf("prompt required: use --prompt"))
			}

			coll := collection
			if coll == "" && a.cfg != nil {
				coll = a.cfg.DefaultCollection
			}
			if coll == "" {
				return exitWithCode(ExitValidation,
					fmt.Errorf("collection required: use --collection or set default_collection in config"))
			}

			if model == "" && a.cfg != nil {
				model = a.cfg.DefaultModel
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			if stream {
				return a.runStreamingChat(cmd, client, coll, prompt, model)
			}

			completion, err := client.Chat.Completions.Create(cmd.Context(), &cloudglue.CompletionParams{
				Messages:         []cloudglue.Message{{Role: "user", Content: prompt}},
				Model:            model,
				Collections:      []string{coll},
				IncludeCitations: cloudglue.Bool(citations),
			})
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(completion)
			}

			fmt.Fprintf(a.stdout, "> %s\n", prompt)
			if len(completion.Choices) > 0 {
				fmt.Fprintln(a.stdout, completion.Choices[0].Message.Content)
			}
			for _, c := range completion.Citations {
				fmt.Fprintf(a.stdout, "  [%s %.1fs-%.1fs] %s\n", c.FileID, c.StartTime, c.EndTime, c.Text)
			}
			if a.verbose && completion.Usage != nil {
				fmt.Fprintf(a.stderr, "Usage: %d prompt + %d completion = %d total tokens\n",
					completion.Usage.PromptTokens,
					completion.Usage.CompletionTokens,
					completion.Usage.TotalTokens)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "user message (required)")
	cmd.Flags().StringVar(&model, "model", "", "model override")
	cmd.Flags().StringVar(&collection, "collection", "", "collection to search")
	cmd.Flags().BoolVar(&citations, "citations", false, "include grounding citations")
	cmd.Flags().BoolVar(&stream, "stream", false, "stream the answer as it generates")

	return cmd
}

// runStreamingChat answers via the streaming responses endpoint, printing
// deltas as they arrive.
func (a *App) runStreamingChat(cmd *cobra.Command, client *cloudglue.Client, collection, prompt, model string) error {
	stream, err := client.Responses.CreateStream(cmd.Context(), &cloudglue.ResponseParams{
		Input:          []cloudglue.Message{{Role: "user", Content: prompt}},
		Model:          model,
		KnowledgeBases: []cloudglue.KnowledgeBase{{CollectionID: collection}},
	})
	if err != nil {
		return a.handleAPIError(err)
	}
	defer stream.Close()

	fmt.Fprintf(a.stdout, "> %s\n", prompt)

	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return a.handleAPIError(err)
		}
		if ev.Done() {
			continue
		}
		if payload, ok := ev.Data.(map[string]any); ok {
			if text, ok := payload["text"].(string); ok {
				fmt.Fprint(a.stdout, text)
			}
		}
	}

	fmt.Fprintln(a.stdout)
	return nil
}
