package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"docmatch/internal/config"
	"docmatch/internal/domain"
)

var (
	matchTrain   string
	matchTest    string
	matchTop     int
	matchWorkers int
	matchStem    bool
	matchOutput  string
	matchDB      string
)

func newMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank every test document against the training corpus",
		Long: `Index the training directory, then print the top matches of every
document in the test directory.

Examples:
  docmatch match --train ./invoices/train --test ./invoices/test
  docmatch match --top 3 --output json
  docmatch match --db runs.db`,
		Args: cobra.NoArgs,
		RunE: runMatch,
	}
	cmd.Flags().StringVar(&matchTrain, "train", "", "training directory (overrides training.dir)")
	cmd.Flags().StringVar(&matchTest, "test", "", "test directory (overrides query.dir)")
	cmd.Flags().IntVarP(&matchTop, "top", "n", 5, "matches per test document")
	cmd.Flags().IntVar(&matchWorkers, "workers", 4, "parallel extraction and query workers")
	cmd.Flags().BoolVar(&matchStem, "stem", false, "apply English stemming to terms")
	cmd.Flags().StringVarP(&matchOutput, "output", "o", "text", "output format (text, json)")
	cmd.Flags().StringVar(&matchDB, "db", "", "record the run in this SQLite database")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if matchTrain != "" {
		cfg.Training.Dir = matchTrain
	}
	if matchTest != "" {
		cfg.Query.Dir = matchTest
	}
	if cmd.Flags().Changed("top") {
		cfg.Query.TopN = matchTop
	}
	if cmd.Flags().Changed("workers") {
		cfg.Training.Workers = matchWorkers
	}
	if cmd.Flags().Changed("stem") {
		cfg.Tokenizer.Stem = matchStem
	}
	if matchDB != "" {
		cfg.Store.Type = "sqlite"
		cfg.Store.SQLite = &config.SQLiteConfig{Path: matchDB}
	}
	if matchOutput != "text" && matchOutput != "json" {
		return fmt.Errorf("unknown output format %q", matchOutput)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if _, err := a.matcher.Train(ctx, cfg.Training.Dir); err != nil {
		return err
	}
	run, err := a.matcher.MatchDir(ctx, cfg.Query.Dir, cfg.Query.TopN)
	if err != nil {
		return err
	}
	if matchOutput == "json" {
		return writeJSON(cmd.OutOrStdout(), run)
	}
	writeText(cmd.OutOrStdout(), run)
	return nil
}

func writeText(w io.Writer, run *domain.Run) {
	if len(run.Cases) == 0 {
		fmt.Fprintln(w, "No valid test data found")
		return
	}
	for _, c := range run.Cases {
		fmt.Fprintf(w, "\nTest Case: %s\n", c.QueryID)
		for _, m := range c.Matches {
			fmt.Fprintf(w, "Matched: %s, Similarity Score: %.4f\n", m.DocumentID, m.Score)
		}
	}
}

func writeJSON(w io.Writer, run *domain.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run.Cases)
}
