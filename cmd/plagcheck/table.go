package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/internal/similarity/cosine"
)

func renderOutcomes(outcomes []pairOutcome) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Original", "Candidate", "Score", "Result"})
	for _, o := range outcomes {
		score, result := "-", o.pair.Output
		if o.err != nil {
			result = fmt.Sprintf("error: %v", o.err)
		} else {
			score = cosine.Format(o.report.Score)
		}
		tw.AppendRow(table.Row{o.pair.Original, o.pair.Candidate, score, result})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
