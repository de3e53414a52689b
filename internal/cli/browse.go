package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docmatch/internal/summarizer"
	"docmatch/internal/tui"
)

var (
	browseTrain string
	browseTop   int
)

func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively match typed or pasted text against the training corpus",
		Args:  cobra.NoArgs,
		RunE:  runBrowse,
	}
	cmd.Flags().StringVar(&browseTrain, "train", "", "training directory (overrides training.dir)")
	cmd.Flags().IntVarP(&browseTop, "top", "n", 10, "matches to show")
	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if browseTrain != "" {
		cfg.Training.Dir = browseTrain
	}
	if cmd.Flags().Changed("top") {
		cfg.Query.TopN = browseTop
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.matcher.Train(cmd.Context(), cfg.Training.Dir)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("%s: %d documents, %d terms, %d skipped",
		report.TrainDir, report.Loaded, report.Vocabulary, len(report.Skipped))
	m := tui.New(a.matcher, summarizer.NewFrequencySummarizer(a.tokenizer), header, cfg.Query.TopN, cfg.Summarizer.MaxSentences)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
