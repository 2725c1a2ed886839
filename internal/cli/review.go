package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docpilot/docpilot/internal/analysis"
	"github.com/docpilot/docpilot/internal/config"
	"github.com/docpilot/docpilot/internal/docreview"
	"github.com/docpilot/docpilot/internal/providers"
)

var (
	flagTitle  string
	flagAuthor string
	flagBase   string
	flagHead   string
	flagBrief  bool
	flagJSON   bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <old.md> <new.md>",
	Short: "Review two revisions of a markdown document from the command line",
	Long: `Review runs the same pipeline the webhook server uses, against two local
files: classify the document, diff its sections, lint it, then ask the model
for a structured review. Falls back to a one-line summary when the
structured attempt fails, and prints nothing but a notice when both fail.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		oldContent, err := os.ReadFile(args[0])
		if err != nil {
			exitCode = ExitUsageError
			return fmt.Errorf("reading old revision: %w", err)
		}
		newContent, err := os.ReadFile(args[1])
		if err != nil {
			exitCode = ExitUsageError
			return fmt.Errorf("reading new revision: %w", err)
		}

		in := docreview.ReviewInput{
			PR: docreview.PRContext{
				Title:   flagTitle,
				Author:  flagAuthor,
				BaseRef: flagBase,
				HeadRef: flagHead,
			},
			DocType:  analysis.ClassifyDocument(args[1], string(newContent)),
			Diff:     analysis.DiffSections(string(oldContent), string(newContent)),
			Findings: analysis.LintDocument(args[1], string(newContent)),
		}

		var opts []providers.MiniMaxOption
		if cfg.Model.BaseURL != "" {
			opts = append(opts, providers.WithBaseURL(cfg.Model.BaseURL))
		}
		synth := docreview.NewSynthesizer(providers.NewMiniMax(cfg.Model.Name, opts...), nil)
		creds := docreview.ModelConfig{APIKey: cfg.Model.APIKey, GroupID: cfg.Model.GroupID}

		if flagBrief {
			summary := synth.Summarize(cmd.Context(), in, creds, docreview.SummaryStyleBrief)
			if summary == "" {
				fmt.Fprintln(os.Stderr, "No summary available.")
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintln(os.Stdout, summary)
			return nil
		}

		for _, strat := range docreview.Strategies(synth) {
			res, ok := strat.Generate(cmd.Context(), in, creds)
			if !ok {
				continue
			}
			if flagJSON && res.Output != nil {
				data, err := json.MarshalIndent(res.Output, "", "  ")
				if err != nil {
					exitCode = ExitRuntimeError
					return err
				}
				fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			fmt.Fprintln(os.Stdout, res.Comment)
			return nil
		}

		fmt.Fprintln(os.Stderr, "No review available: every strategy failed.")
		exitCode = ExitRuntimeError
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagTitle, "title", "Update documentation", "PR title to review under")
	reviewCmd.Flags().StringVar(&flagAuthor, "author", "local", "PR author")
	reviewCmd.Flags().StringVar(&flagBase, "base", "main", "Base ref name")
	reviewCmd.Flags().StringVar(&flagHead, "head", "docs-update", "Head ref name")
	reviewCmd.Flags().BoolVar(&flagBrief, "brief", false, "One short sentence instead of a full review")
	reviewCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the structured review as JSON")
}
