package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/calibrator/calibrator"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var earlyRefMap bool
	var showTrace bool
	var statementsFile string
	var statementColumn string
	var corpusOpts *corpusFlags

	cmd := &cobra.Command{
		Use:   "analyze [statement...]",
		Short: "Estimate the calibration of a statement",
		Long: "Runs the matching pipeline for the statement given as arguments. Without arguments, " +
			"statements are read one per line from stdin; on a terminal an interactive prompt is shown. " +
			"With --file, statements come from a text file or the statement column of a CSV/TSV file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if statementsFile != "" && len(args) > 0 {
				return errors.New("pass statements as arguments or --file, not both")
			}
			svc, err := ctx.ensureService(cmd, corpusOpts)
			if err != nil {
				return err
			}
			defer ctx.close()
			if cmd.Flags().Changed("early-refmap") {
				svc.SetEarlyReferenceMap(earlyRefMap)
			}

			emit := func(statement string) error {
				res, err := svc.Run(cmd.Context(), statement)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, res)
				}
				out := cmd.OutOrStdout()
				if err := calibrator.RenderReport(out, res, calibrator.ReportOptions{Heading: headingFunc(out)}); err != nil {
					return err
				}
				if showTrace {
					fmt.Fprintln(out, traceTable(res))
				}
				return nil
			}

			if len(args) > 0 {
				return emit(strings.Join(args, " "))
			}
			if statementsFile != "" {
				statements, err := ctx.readStatements(statementsFile, statementColumn)
				if err != nil {
					return err
				}
				return eachStatement(cmd.Context(), statements, emit)
			}
			in := cmd.InOrStdin()
			if isTerminal(in) {
				return interactive(cmd, in, emit)
			}
			return eachLine(cmd.Context(), in, emit)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&earlyRefMap, "early-refmap", false, "Fall back to the reference map before trying keyword expansion")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "Print a table of the stages that ran")
	cmd.Flags().StringVar(&statementsFile, "file", "", "Read statements from a text, CSV or TSV file")
	cmd.Flags().StringVar(&statementColumn, "statement-column", "", "Statement column of --file: header name or #n")
	corpusOpts = addCorpusFlags(cmd)
	return cmd
}

// eachStatement runs emit for every statement, stopping on cancellation.
func eachStatement(ctx context.Context, statements []string, emit func(string) error) error {
	if len(statements) == 0 {
		return calibrator.ErrEmptyStatement
	}
	for _, statement := range statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(statement); err != nil {
			return err
		}
	}
	return nil
}

// eachLine runs emit for every non-blank line of r.
func eachLine(ctx context.Context, r io.Reader, emit func(string) error) error {
	scanner := bufio.NewScanner(r)
	ran := false
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ran = true
		if err := emit(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read statements: %w", err)
	}
	if !ran {
		return calibrator.ErrEmptyStatement
	}
	return nil
}

func interactive(cmd *cobra.Command, r io.Reader, emit func(string) error) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(out, "Enter a statement (blank line to quit): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.EqualFold(line, "quit") {
			return nil
		}
		if err := emit(line); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		}
		fmt.Fprintln(out)
	}
}
