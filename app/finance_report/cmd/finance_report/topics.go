package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/catalog"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

func newTopicsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "topics [topic...]",
		Short: "list report topics by category, or describe the given topics",
		Example: `  # Whole catalog
  finance_report topics

  # Describe two topics
  finance_report topics "Valuation Analysis" "Exit Strategy Considerations"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return describeTopics(cmd.OutOrStdout(), args)
			}
			return printTopics(cmd.OutOrStdout())
		},
	}
}

func printTopics(w io.Writer) error {
	for _, c := range catalog.Categories() {
		if _, err := fmt.Fprintf(w, "%s\n", c.Name); err != nil {
			return err
		}
		for _, t := range c.Topics {
			if _, err := fmt.Fprintf(w, "  - %s: %s\n", t.Name, t.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeTopics(w io.Writer, topics []string) error {
	for _, t := range topics {
		d, ok := catalog.Describe(t)
		if !ok {
			return model.NewInputValidationError("topics", "unknown topic "+t)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", t, d); err != nil {
			return err
		}
	}
	return nil
}
