package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/calibrator/calibrator"
)

func newCorpusCommand(ctx *commandContext) *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect or export the reference corpus",
	}
	corpusCmd.AddCommand(newCorpusListCommand(ctx))
	corpusCmd.AddCommand(newCorpusExportCommand(ctx))
	return corpusCmd
}

func newCorpusListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var filter string
	var corpusOpts *corpusFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List corpus entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, _, err := ctx.loadData(cmd, corpusOpts)
			if err != nil {
				return err
			}
			entries := corpus.Entries()
			if needle := calibrator.Normalize(filter); needle != "" {
				kept := entries[:0]
				for _, e := range entries {
					if strings.Contains(calibrator.Normalize(e.Text), needle) {
						kept = append(kept, e)
					}
				}
				entries = kept
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, entryTable(entries))
			fmt.Fprintf(out, "%d entries\n", len(entries))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	cmd.Flags().StringVar(&filter, "filter", "", "Only list entries whose text contains this phrase")
	corpusOpts = addCorpusFlags(cmd)
	return cmd
}

func newCorpusExportCommand(ctx *commandContext) *cobra.Command {
	var target string
	var corpusOpts *corpusFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active corpus to a SQLite file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target = strings.TrimSpace(target)
			if target == "" {
				return fmt.Errorf("--sqlite is required")
			}
			corpus, _, err := ctx.loadData(cmd, corpusOpts)
			if err != nil {
				return err
			}
			if err := calibrator.WriteCorpusSQLite(target, corpus.Entries()); err != nil {
				return fmt.Errorf("export corpus: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", corpus.Len(), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "sqlite", "", "Destination SQLite file")
	corpusOpts = addCorpusFlags(cmd)
	return cmd
}

func newLevelsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List the reference map levels, highest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, refmap, err := ctx.loadData(cmd, nil)
			if err != nil {
				return err
			}
			levels := refmap.Levels()
			if asJSON {
				return writeJSON(cmd, levels)
			}
			fmt.Fprintln(cmd.OutOrStdout(), levelTable(levels))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print levels as JSON")
	return cmd
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
