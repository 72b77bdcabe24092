package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/batch"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/checker/report"
)

// manifest lists document pairs. Relative paths are resolved against the
// manifest's directory.
type manifest struct {
	Workers int            `yaml:"workers"`
	Pairs   []manifestPair `yaml:"pairs"`
}

type manifestPair struct {
	Original  string `yaml:"original"`
	Candidate string `yaml:"candidate"`
	Output    string `yaml:"output"`
}

type pairOutcome struct {
	pair   manifestPair
	report report.Report
	err    error
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var asTable bool
	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Compare every pair listed in a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.teardown()
			m, err := loadManifest(args[0])
			if err != nil {
				return ctx.fail("loading manifest", err, "path", args[0])
			}
			n := defaultWorkers(ctx.cfg)
			if m.Workers > 0 {
				n = m.Workers
			}
			if cmd.Flags().Changed("workers") {
				n = workers
			}

			outcomes, err := batch.Map(cmd.Context(), n, m.Pairs, func(_ context.Context, p manifestPair) (pairOutcome, error) {
				rep, err := ctx.comparePaths(p.Original, p.Candidate, p.Output)
				return pairOutcome{pair: p, report: rep, err: err}, nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, o := range outcomes {
				if o.err != nil {
					failed++
				}
			}
			if asTable {
				fmt.Fprintln(out, renderOutcomes(outcomes))
			} else {
				for _, o := range outcomes {
					if o.err != nil {
						fmt.Fprintf(out, "%s vs %s: error: %v\n", o.pair.Original, o.pair.Candidate, o.err)
						continue
					}
					fmt.Fprintf(out, "%s vs %s: %s\n", o.pair.Original, o.pair.Candidate, o.report.Display())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d pairs failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of pairs compared in parallel")
	cmd.Flags().BoolVar(&asTable, "table", false, "Print results as a table")
	return cmd
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Pairs) == 0 {
		return nil, fmt.Errorf("manifest %s lists no pairs", path)
	}
	base := filepath.Dir(path)
	for i := range m.Pairs {
		p := &m.Pairs[i]
		if p.Original == "" || p.Candidate == "" || p.Output == "" {
			return nil, fmt.Errorf("manifest %s: pair %d needs original, candidate and output", path, i)
		}
		p.Original = resolve(base, p.Original)
		p.Candidate = resolve(base, p.Candidate)
		p.Output = resolve(base, p.Output)
	}
	return &m, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
