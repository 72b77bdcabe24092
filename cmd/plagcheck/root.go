package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/report"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:   "plagcheck <original> <candidate> <output>",
		Short: "Score the textual similarity of two documents",
		Long: `plagcheck tokenizes both documents, weights their terms with TF-IDF and
prints the cosine similarity rounded to two decimals. The same line is
written to the output file, replacing its contents.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.teardown()
			rep, err := ctx.comparePaths(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Display())
			return nil
		},
	}
	ctx.bindFlags(rootCmd)
	rootCmd.AddCommand(newBatchCommand(ctx))
	return rootCmd
}

// comparePaths reads both documents, scores them and writes the result file.
func (c *commandContext) comparePaths(originalPath, candidatePath, outputPath string) (report.Report, error) {
	original, err := report.ReadText(originalPath)
	if err != nil {
		return report.Report{}, c.fail("reading original", err, "path", originalPath)
	}
	candidate, err := report.ReadText(candidatePath)
	if err != nil {
		return report.Report{}, c.fail("reading candidate", err, "path", candidatePath)
	}
	result := c.engine.Compare(original, candidate)
	rep := report.New(result, report.ContentHash(original), report.ContentHash(candidate), c.fingerprint)
	if err := report.WriteFile(outputPath, rep); err != nil {
		return report.Report{}, c.fail("writing result", err, "path", outputPath)
	}
	return rep, nil
}
