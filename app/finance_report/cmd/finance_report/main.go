package main

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	rootUse              = "finance_report"
	rootShortDescription = "sectioned financial report generator"
	rootLongDescription  = `finance_report generates a multi-section financial analysis for one company.
Each selected topic becomes one section; every section sees all earlier sections
so that the report does not repeat itself. The result is exported as Markdown and HTML.`
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newGenerateCommand(), newTopicsCommand())
	return root
}
